// Package session carries the acting user's identity through a
// context.Context. The HTTP auth middleware and the Kafka consumer both
// attach the actor here; the application service reads it to keep the
// triggering user out of their own notification fan-out.
package session

import "context"

type actorKey struct{}

// WithActor returns a context carrying the acting user's id.
func WithActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// Actor returns the acting user's id and whether one is attached.
func Actor(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey{}).(int64)
	return id, ok && id > 0
}
