package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"vn.io.arda/taskmail/internal/domain"
)

// Repository is the PostgreSQL implementation of the domain storage ports
// (UserRepository, ProjectRepository, PreferenceRepository).
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new postgres Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recipientColumns = "id, username, name, email, language"

// IsEverybodyAllowed reports whether the project bypasses per-user grants.
// An unknown project is treated as not open to everybody; the permission
// join then yields no recipients.
func (r *Repository) IsEverybodyAllowed(ctx context.Context, projectID int64) (bool, error) {
	var allowed bool
	err := r.pool.QueryRow(ctx,
		`SELECT is_everybody_allowed FROM projects WHERE id = $1`, projectID,
	).Scan(&allowed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("project everybody-allowed flag: %w", err)
	}
	return allowed, nil
}

// UsersWithNotification returns the candidate recipients for a project:
// notification-enabled users with a non-empty email, minus the exclude set.
// Everybody-allowed projects skip the permission join entirely.
func (r *Repository) UsersWithNotification(ctx context.Context, projectID int64, exclude []int64) ([]domain.Recipient, error) {
	allowed, err := r.IsEverybodyAllowed(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if exclude == nil {
		exclude = []int64{}
	}

	var rows pgx.Rows
	if allowed {
		rows, err = r.pool.Query(ctx, `
			SELECT `+recipientColumns+`
			FROM users
			WHERE notifications_enabled = TRUE AND email <> '' AND NOT (id = ANY($1))
		`, exclude)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT u.id, u.username, u.name, u.email, u.language
			FROM users u
			JOIN project_has_users pu ON pu.user_id = u.id
			WHERE pu.project_id = $1
			  AND u.notifications_enabled = TRUE AND u.email <> '' AND NOT (u.id = ANY($2))
		`, projectID, exclude)
	}
	if err != nil {
		return nil, fmt.Errorf("query candidate recipients: %w", err)
	}
	defer rows.Close()

	var results []domain.Recipient
	for rows.Next() {
		var u domain.Recipient
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Language); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

// UserByID fetches a single user projection.
func (r *Repository) UserByID(ctx context.Context, userID int64) (domain.Recipient, error) {
	var u domain.Recipient
	err := r.pool.QueryRow(ctx,
		`SELECT `+recipientColumns+` FROM users WHERE id = $1`, userID,
	).Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.Language)
	if err != nil {
		return domain.Recipient{}, fmt.Errorf("user %d: %w", userID, err)
	}
	return u, nil
}

// SubscriptionFor returns the user's opt-in state. Zero rows map to the
// AllProjects variant here, at the storage boundary.
func (r *Repository) SubscriptionFor(ctx context.Context, userID int64) (domain.Subscription, error) {
	projectIDs, err := r.subscribedProjects(ctx, userID)
	if err != nil {
		return domain.Subscription{}, err
	}
	return domain.RestrictedTo(projectIDs), nil
}

// ReplaceSettings fully replaces a user's preference state in one
// transaction: wipe subscription rows, set the flag, re-insert the
// selection when enabled.
func (r *Repository) ReplaceSettings(ctx context.Context, userID int64, settings domain.Settings) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin settings replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM user_has_notifications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear subscriptions: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE users SET notifications_enabled = $1 WHERE id = $2`,
		settings.NotificationsEnabled, userID); err != nil {
		return fmt.Errorf("update notifications flag: %w", err)
	}

	if settings.NotificationsEnabled {
		for _, projectID := range settings.Projects {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_has_notifications (user_id, project_id) VALUES ($1, $2)`,
				userID, projectID); err != nil {
				return fmt.Errorf("insert subscription (user %d, project %d): %w", userID, projectID, err)
			}
		}
	}

	return tx.Commit(ctx)
}

// Settings reads the stored flag and subscription rows back.
func (r *Repository) Settings(ctx context.Context, userID int64) (domain.Settings, error) {
	var s domain.Settings
	err := r.pool.QueryRow(ctx,
		`SELECT notifications_enabled FROM users WHERE id = $1`, userID,
	).Scan(&s.NotificationsEnabled)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("notifications flag for user %d: %w", userID, err)
	}

	s.Projects, err = r.subscribedProjects(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

func (r *Repository) subscribedProjects(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT project_id FROM user_has_notifications WHERE user_id = $1 ORDER BY project_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var projectIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		projectIDs = append(projectIDs, id)
	}
	return projectIDs, rows.Err()
}
