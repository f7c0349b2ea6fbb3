package handlers

import (
	"vn.io.arda/taskmail/internal/domain"
)

func init() {
	Register("task-events", "TASK_CREATED", handleTaskCreated)
	Register("task-events", "TASK_UPDATED", handleTaskUpdated)
	Register("task-events", "TASK_CLOSED", handleTaskClosed)
	Register("task-events", "TASK_OPENED", handleTaskOpened)
	Register("task-events", "TASK_MOVED_COLUMN", handleTaskMovedColumn)
	Register("task-events", "TASK_MOVED_POSITION", handleTaskMovedPosition)
	Register("task-events", "TASK_ASSIGNEE_CHANGED", handleTaskAssigneeChanged)
}

func handleTaskCreated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_creation", domain.Payload{"description": env.Payload.Description})
}

func handleTaskUpdated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_update", domain.Payload{"description": env.Payload.Description})
}

func handleTaskClosed(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_close", nil)
}

func handleTaskOpened(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_open", nil)
}

func handleTaskMovedColumn(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_move_column", domain.Payload{"column": env.Payload.Column})
}

func handleTaskMovedPosition(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_move_position", domain.Payload{"position": env.Payload.Position})
}

func handleTaskAssigneeChanged(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("task_assignee_change", domain.Payload{"assignee": env.Payload.Assignee})
}
