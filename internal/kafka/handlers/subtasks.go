package handlers

import (
	"vn.io.arda/taskmail/internal/domain"
)

func init() {
	Register("subtask-events", "SUBTASK_CREATED", handleSubtaskCreated)
	Register("subtask-events", "SUBTASK_UPDATED", handleSubtaskUpdated)
}

func handleSubtaskCreated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("subtask_creation", domain.Payload{"subtask": env.Payload.Subtask})
}

func handleSubtaskUpdated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("subtask_update", domain.Payload{"subtask": env.Payload.Subtask})
}
