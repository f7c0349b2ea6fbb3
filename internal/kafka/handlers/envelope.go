package handlers

import (
	"encoding/json"

	"vn.io.arda/taskmail/internal/domain"
)

// taskEnv is the shared envelope for task-scoped project events. The
// producer services all wrap their payloads the same way; individual
// handlers pick the payload fields they care about.
type taskEnv struct {
	EventType string `json:"eventType"`
	EventID   string `json:"eventId"`
	Payload   struct {
		ProjectID   int64  `json:"projectId"`
		ProjectName string `json:"projectName"`
		ActorID     int64  `json:"actorId"`
		TaskID      int64  `json:"taskId"`
		TaskTitle   string `json:"taskTitle"`
		Description string `json:"description"`
		Column      string `json:"column"`
		Position    int    `json:"position"`
		Assignee    string `json:"assignee"`
		Comment     string `json:"comment"`
		Subtask     string `json:"subtask"`
		FileName    string `json:"fileName"`
	} `json:"payload"`
}

func parseTaskEnv(data []byte) (*taskEnv, bool) {
	var env taskEnv
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if env.Payload.ProjectID == 0 || env.Payload.TaskID == 0 {
		return nil, false
	}
	return &env, true
}

// job builds an EmailJob for a task-scoped template, merging any
// template-specific extra keys into the payload.
func (env *taskEnv) job(template string, extra domain.Payload) *domain.EmailJob {
	data := domain.Payload{
		"task": domain.TaskMeta{
			ID:          env.Payload.TaskID,
			Title:       env.Payload.TaskTitle,
			ProjectName: env.Payload.ProjectName,
		},
	}
	for k, v := range extra {
		data[k] = v
	}
	return &domain.EmailJob{
		Template:  template,
		ProjectID: env.Payload.ProjectID,
		ActorID:   env.Payload.ActorID,
		Data:      data,
	}
}
