package domain

// Recipient is the projection of a user surfaced by the recipient queries.
// Email is always non-empty for anything returned by UserRepository.
type Recipient struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Language string `json:"language"`
}

// DisplayName prefers the full name over the login when both are set.
func (r Recipient) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Username
}

// TaskMeta carries the task fields used by subject lines and mail bodies.
type TaskMeta struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ProjectName string `json:"project_name"`
}

// Payload is the keyed substitution data attached to a notification.
// Well-known keys: "task" (TaskMeta), "project" (string, due-task digests),
// plus whatever extra keys an event handler attaches for the body template.
type Payload map[string]any

// Task returns the task metadata, or the zero value when absent.
func (p Payload) Task() TaskMeta {
	t, _ := p["task"].(TaskMeta)
	return t
}

// ProjectName returns the "project" key used by project-level digests.
func (p Payload) ProjectName() string {
	s, _ := p["project"].(string)
	return s
}

// EmailJob is the transient dispatch request produced per triggering event.
// It is consumed once by the application service and discarded.
type EmailJob struct {
	// Template selects the subject line and body template, e.g. "task_creation".
	Template string
	// ProjectID scopes recipient resolution.
	ProjectID int64
	// ActorID is the user whose action caused the event. Zero when the
	// event has no actor (e.g. due-task reminders from the scheduler).
	ActorID int64
	Data    Payload
}

// Subscription is a user's per-project opt-in state: either all permitted
// projects (no rows stored) or an explicit subset.
type Subscription struct {
	restricted bool
	projects   map[int64]struct{}
}

// AllProjects is the unrestricted subscription (the user stored no rows).
func AllProjects() Subscription {
	return Subscription{}
}

// RestrictedTo builds a subscription limited to the given project ids.
// An empty id list collapses to AllProjects; the restricted variant only
// exists when at least one row is stored.
func RestrictedTo(projectIDs []int64) Subscription {
	if len(projectIDs) == 0 {
		return AllProjects()
	}
	set := make(map[int64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		set[id] = struct{}{}
	}
	return Subscription{restricted: true, projects: set}
}

// All reports whether the subscription covers every permitted project.
func (s Subscription) All() bool {
	return !s.restricted
}

// Includes reports whether notifications for projectID are wanted.
func (s Subscription) Includes(projectID int64) bool {
	if !s.restricted {
		return true
	}
	_, ok := s.projects[projectID]
	return ok
}
