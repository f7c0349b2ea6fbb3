package domain

import (
	"context"
	"errors"
)

// ErrDelivery classifies outbound mail transport failures.
var ErrDelivery = errors.New("mail delivery failed")

// UserRepository defines the port for recipient and user lookups.
// Implementations live in infrastructure/postgres.
type UserRepository interface {
	// UsersWithNotification returns the candidate recipients for a project:
	// users with notifications enabled and a non-empty email, minus the
	// exclude set. For everybody-allowed projects all users qualify,
	// otherwise only users holding a permission row for the project.
	UsersWithNotification(ctx context.Context, projectID int64, exclude []int64) ([]Recipient, error)

	// UserByID fetches a single user projection.
	UserByID(ctx context.Context, userID int64) (Recipient, error)
}

// ProjectRepository exposes project-level permission flags.
type ProjectRepository interface {
	// IsEverybodyAllowed reports whether the project bypasses per-user grants.
	IsEverybodyAllowed(ctx context.Context, projectID int64) (bool, error)
}

// PreferenceRepository persists per-user notification preferences.
type PreferenceRepository interface {
	// SubscriptionFor returns the user's opt-in state. Zero stored rows map
	// to AllProjects exactly once, at this boundary.
	SubscriptionFor(ctx context.Context, userID int64) (Subscription, error)

	// ReplaceSettings fully replaces the user's preference state: the
	// enabled flag is set and every subscription row is deleted, then
	// re-inserted from the given settings. Never partially patched.
	ReplaceSettings(ctx context.Context, userID int64, settings Settings) error

	// Settings reads the stored flag and subscription rows back.
	Settings(ctx context.Context, userID int64) (Settings, error)
}

// Mailer is the outbound transport port. Implementations wrap failures
// with ErrDelivery.
type Mailer interface {
	Send(toEmail, toName, subject, body string) error
}
