package handlers

import (
	"encoding/json"

	"vn.io.arda/taskmail/internal/domain"
)

func init() {
	// The reminder scheduler publishes one message per project; the whole
	// message is the command, no eventType routing.
	RegisterDirect("task-reminders", handleDueTasks)
}

func handleDueTasks(data []byte) *domain.EmailJob {
	var cmd struct {
		EventID     string `json:"eventId"`
		ProjectID   int64  `json:"projectId"`
		ProjectName string `json:"projectName"`
		Tasks       []struct {
			ID    int64  `json:"id"`
			Title string `json:"title"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil
	}
	if cmd.ProjectID == 0 || len(cmd.Tasks) == 0 {
		return nil
	}

	tasks := make([]domain.TaskMeta, 0, len(cmd.Tasks))
	for _, t := range cmd.Tasks {
		tasks = append(tasks, domain.TaskMeta{ID: t.ID, Title: t.Title, ProjectName: cmd.ProjectName})
	}

	// Scheduler-driven: there is no acting user to exclude.
	return &domain.EmailJob{
		Template:  "task_due",
		ProjectID: cmd.ProjectID,
		Data: domain.Payload{
			"project": cmd.ProjectName,
			"tasks":   tasks,
		},
	}
}
