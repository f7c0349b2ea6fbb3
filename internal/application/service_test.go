package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"vn.io.arda/taskmail/internal/domain"
	"vn.io.arda/taskmail/internal/i18n"
	"vn.io.arda/taskmail/internal/mailer"
	"vn.io.arda/taskmail/internal/session"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type userRow struct {
	domain.Recipient
	enabled bool
}

// fakeUserStore models the candidate query: enabled users with a non-empty
// email, permission rows unless the project is open to everybody.
type fakeUserStore struct {
	users     []userRow
	everybody map[int64]bool
	perms     map[int64]map[int64]bool // projectID -> userID -> granted
	err       error
}

func (f *fakeUserStore) UsersWithNotification(_ context.Context, projectID int64, exclude []int64) ([]domain.Recipient, error) {
	if f.err != nil {
		return nil, f.err
	}
	excluded := make(map[int64]bool, len(exclude))
	for _, id := range exclude {
		excluded[id] = true
	}
	var out []domain.Recipient
	for _, u := range f.users {
		if !u.enabled || u.Email == "" || excluded[u.ID] {
			continue
		}
		if !f.everybody[projectID] && !f.perms[projectID][u.ID] {
			continue
		}
		out = append(out, u.Recipient)
	}
	return out, nil
}

func (f *fakeUserStore) UserByID(_ context.Context, userID int64) (domain.Recipient, error) {
	for _, u := range f.users {
		if u.ID == userID {
			return u.Recipient, nil
		}
	}
	return domain.Recipient{}, fmt.Errorf("user %d not found", userID)
}

type fakePrefStore struct {
	subs  map[int64][]int64
	saved map[int64]domain.Settings
	err   error
}

func (f *fakePrefStore) SubscriptionFor(_ context.Context, userID int64) (domain.Subscription, error) {
	if f.err != nil {
		return domain.Subscription{}, f.err
	}
	return domain.RestrictedTo(f.subs[userID]), nil
}

func (f *fakePrefStore) ReplaceSettings(_ context.Context, userID int64, settings domain.Settings) error {
	if f.saved == nil {
		f.saved = make(map[int64]domain.Settings)
	}
	f.saved[userID] = settings
	f.subs = map[int64][]int64{userID: settings.Projects}
	return nil
}

func (f *fakePrefStore) Settings(_ context.Context, userID int64) (domain.Settings, error) {
	return f.saved[userID], nil
}

type sentMail struct {
	to, name, subject, body string
}

type fakeMailer struct {
	sent   []sentMail
	failTo map[string]bool
}

func (f *fakeMailer) Send(toEmail, toName, subject, body string) error {
	if f.failTo[toEmail] {
		return fmt.Errorf("%w: rejected", domain.ErrDelivery)
	}
	f.sent = append(f.sent, sentMail{to: toEmail, name: toName, subject: subject, body: body})
	return nil
}

func newTestService(t *testing.T, users *fakeUserStore, prefs *fakePrefStore, mail *fakeMailer) *Service {
	t.Helper()
	composer, err := mailer.NewComposer("Taskboard", "http://example.com/")
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}
	return NewService(users, prefs, mail, composer, i18n.New("en"))
}

func boardUsers() *fakeUserStore {
	return &fakeUserStore{
		users: []userRow{
			{Recipient: domain.Recipient{ID: 1, Username: "alice", Name: "Alice", Email: "alice@example.com", Language: "fr"}, enabled: true},
			{Recipient: domain.Recipient{ID: 2, Username: "bob", Email: "bob@example.com"}, enabled: true},
			{Recipient: domain.Recipient{ID: 3, Username: "carol", Email: "carol@example.com"}, enabled: false},
			{Recipient: domain.Recipient{ID: 4, Username: "dave", Email: ""}, enabled: true},
		},
		everybody: map[int64]bool{10: true},
		perms: map[int64]map[int64]bool{
			20: {1: true},
		},
	}
}

func ids(users []domain.Recipient) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// ─── Recipient resolution ────────────────────────────────────────────────────

func TestRecipientsFor_EverybodyAllowed(t *testing.T) {
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, &fakeMailer{})

	// Disabled carol and email-less dave never qualify; permission rows
	// are irrelevant for an everybody-allowed project.
	got, err := svc.RecipientsFor(context.Background(), 10, nil)
	if err != nil {
		t.Fatalf("RecipientsFor failed: %v", err)
	}
	if want := []int64{1, 2}; !equalIDs(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestRecipientsFor_PermissionRestricted(t *testing.T) {
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, &fakeMailer{})

	got, err := svc.RecipientsFor(context.Background(), 20, nil)
	if err != nil {
		t.Fatalf("RecipientsFor failed: %v", err)
	}
	if want := []int64{1}; !equalIDs(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestRecipientsFor_ExcludesSessionActor(t *testing.T) {
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, &fakeMailer{})

	ctx := session.WithActor(context.Background(), 1)
	got, err := svc.RecipientsFor(ctx, 10, nil)
	if err != nil {
		t.Fatalf("RecipientsFor failed: %v", err)
	}
	for _, u := range got {
		if u.ID == 1 {
			t.Fatal("triggering actor must never receive their own notification")
		}
	}
	if want := []int64{2}; !equalIDs(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestRecipientsFor_SubscriptionSubset(t *testing.T) {
	users := boardUsers()
	users.everybody[30] = true
	users.everybody[40] = true
	// alice opted into projects 10 and 30 only; bob stored no rows.
	prefs := &fakePrefStore{subs: map[int64][]int64{1: {10, 30}}}
	svc := newTestService(t, users, prefs, &fakeMailer{})

	got, err := svc.RecipientsFor(context.Background(), 40, nil)
	if err != nil {
		t.Fatalf("RecipientsFor failed: %v", err)
	}
	if want := []int64{2}; !equalIDs(ids(got), want) {
		t.Fatalf("project outside the subset: got %v, want %v", ids(got), want)
	}

	got, err = svc.RecipientsFor(context.Background(), 30, nil)
	if err != nil {
		t.Fatalf("RecipientsFor failed: %v", err)
	}
	if want := []int64{1, 2}; !equalIDs(ids(got), want) {
		t.Fatalf("project inside the subset: got %v, want %v", ids(got), want)
	}
}

func TestRecipientsFor_StorageErrorPropagates(t *testing.T) {
	users := boardUsers()
	users.err = errors.New("connection reset")
	svc := newTestService(t, users, &fakePrefStore{}, &fakeMailer{})

	if _, err := svc.RecipientsFor(context.Background(), 10, nil); err == nil {
		t.Fatal("expected storage error to propagate")
	}
}

// ─── Dispatch loop ───────────────────────────────────────────────────────────

func TestSendEmails_UsesRecipientLanguage(t *testing.T) {
	mail := &fakeMailer{}
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, mail)

	users := []domain.Recipient{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Language: "fr"},
		{ID: 2, Username: "bob", Email: "bob@example.com"}, // no language -> default
	}
	data := domain.Payload{"task": domain.TaskMeta{ID: 42, Title: "Fix bug", ProjectName: "Demo"}}

	if err := svc.SendEmails("task_creation", users, data); err != nil {
		t.Fatalf("SendEmails failed: %v", err)
	}
	if len(mail.sent) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(mail.sent))
	}
	if mail.sent[0].subject != "[Demo][Nouvelle tâche] Fix bug (#42)" {
		t.Fatalf("french recipient got %q", mail.sent[0].subject)
	}
	if mail.sent[1].subject != "[Demo][New task] Fix bug (#42)" {
		t.Fatalf("default-locale recipient got %q", mail.sent[1].subject)
	}
	if !strings.Contains(mail.sent[0].body, "Voir cette tâche") {
		t.Fatal("french recipient must get a french body")
	}
	if mail.sent[0].name != "Alice" || mail.sent[1].name != "bob" {
		t.Fatalf("display names: got %q, %q", mail.sent[0].name, mail.sent[1].name)
	}
}

func TestSendEmails_ContinuesPastDeliveryFailure(t *testing.T) {
	mail := &fakeMailer{failTo: map[string]bool{"bob@example.com": true}}
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, mail)

	users := []domain.Recipient{
		{ID: 1, Username: "alice", Email: "alice@example.com"},
		{ID: 2, Username: "bob", Email: "bob@example.com"},
		{ID: 5, Username: "erin", Email: "erin@example.com"},
	}
	data := domain.Payload{"task": domain.TaskMeta{ID: 1, Title: "T", ProjectName: "P"}}

	err := svc.SendEmails("task_update", users, data)
	if !errors.Is(err, domain.ErrDelivery) {
		t.Fatalf("expected a delivery error, got %v", err)
	}
	if len(mail.sent) != 2 {
		t.Fatalf("one failure must not block the batch: %d sends", len(mail.sent))
	}
}

func TestSendEmails_EmptyListLeavesDefaultLocaleUntouched(t *testing.T) {
	mail := &fakeMailer{}
	translator := i18n.New("en")
	composer, err := mailer.NewComposer("Taskboard", "http://example.com/")
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}
	svc := NewService(boardUsers(), &fakePrefStore{}, mail, composer, translator)

	if err := svc.SendEmails("task_creation", nil, domain.Payload{}); err != nil {
		t.Fatalf("SendEmails failed: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatal("no recipients means no sends")
	}
	if translator.Default().Code() != "en" {
		t.Fatal("default locale changed by a send batch")
	}
}

func TestSendEmails_IndependentOfActorLocale(t *testing.T) {
	// The actor's session locale plays no part: SendEmails only consults
	// the recipient's language and the application default.
	mail := &fakeMailer{}
	composer, err := mailer.NewComposer("Taskboard", "http://example.com/")
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}
	svc := NewService(boardUsers(), &fakePrefStore{}, mail, composer, i18n.New("de"))

	users := []domain.Recipient{{ID: 2, Username: "bob", Email: "bob@example.com"}}
	data := domain.Payload{"task": domain.TaskMeta{ID: 7, Title: "T", ProjectName: "P"}}
	if err := svc.SendEmails("task_close", users, data); err != nil {
		t.Fatalf("SendEmails failed: %v", err)
	}
	if got := mail.sent[0].subject; got != "[P][Aufgabe geschlossen] T (#7)" {
		t.Fatalf("expected configured default locale, got %q", got)
	}
}

func TestNotify_ResolvesAndSends(t *testing.T) {
	mail := &fakeMailer{}
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, mail)

	ctx := session.WithActor(context.Background(), 2)
	job := domain.EmailJob{
		Template:  "task_creation",
		ProjectID: 10,
		ActorID:   2,
		Data:      domain.Payload{"task": domain.TaskMeta{ID: 1, Title: "T", ProjectName: "P"}},
	}
	if err := svc.Notify(ctx, job); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if len(mail.sent) != 1 || mail.sent[0].to != "alice@example.com" {
		t.Fatalf("expected a single send to alice, got %+v", mail.sent)
	}
}

// ─── Settings ────────────────────────────────────────────────────────────────

func TestSaveThenReadSettings(t *testing.T) {
	prefs := &fakePrefStore{}
	svc := newTestService(t, boardUsers(), prefs, &fakeMailer{})
	ctx := context.Background()

	err := svc.SaveSettings(ctx, 1, map[string]any{
		"notifications_enabled": 1,
		"projects":              map[string]any{"5": 1, "7": 1},
	})
	if err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := svc.ReadSettings(ctx, 1)
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if got["notifications_enabled"] != true {
		t.Fatal("expected notifications_enabled true")
	}
	if got["project_5"] != true || got["project_7"] != true {
		t.Fatalf("expected project_5 and project_7, got %v", got)
	}
	if len(got) != 3 {
		t.Fatalf("no other project_* keys expected, got %v", got)
	}
}

func TestSaveSettings_DisabledClearsProjects(t *testing.T) {
	prefs := &fakePrefStore{}
	svc := newTestService(t, boardUsers(), prefs, &fakeMailer{})
	ctx := context.Background()

	if err := svc.SaveSettings(ctx, 1, map[string]any{"notifications_enabled": 0}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := svc.ReadSettings(ctx, 1)
	if err != nil {
		t.Fatalf("ReadSettings failed: %v", err)
	}
	if got["notifications_enabled"] != false {
		t.Fatal("expected notifications_enabled false")
	}
	if len(got) != 1 {
		t.Fatalf("no project_* keys expected, got %v", got)
	}
}

// ─── Test email ──────────────────────────────────────────────────────────────

func TestSendTestEmail_FallbackSubject(t *testing.T) {
	mail := &fakeMailer{}
	svc := newTestService(t, boardUsers(), &fakePrefStore{}, mail)

	if err := svc.SendTestEmail(context.Background(), 2); err != nil {
		t.Fatalf("SendTestEmail failed: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 send, got %d", len(mail.sent))
	}
	if mail.sent[0].subject != "[Taskboard] Notification" {
		t.Fatalf("unexpected subject: %q", mail.sent[0].subject)
	}
}

func equalIDs(got, want []int64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
