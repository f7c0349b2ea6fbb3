package handlers

import (
	"vn.io.arda/taskmail/internal/domain"
)

func init() {
	Register("file-events", "FILE_CREATED", handleFileCreated)
}

func handleFileCreated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("file_creation", domain.Payload{"file": env.Payload.FileName})
}
