package handlers

import (
	"vn.io.arda/taskmail/internal/domain"
)

func init() {
	Register("comment-events", "COMMENT_CREATED", handleCommentCreated)
	Register("comment-events", "COMMENT_UPDATED", handleCommentUpdated)
}

func handleCommentCreated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("comment_creation", domain.Payload{"comment": env.Payload.Comment})
}

func handleCommentUpdated(data []byte) *domain.EmailJob {
	env, ok := parseTaskEnv(data)
	if !ok {
		return nil
	}
	return env.job("comment_update", domain.Payload{"comment": env.Payload.Comment})
}
