package domain

import (
	"reflect"
	"testing"
)

func TestParseSettings_EnabledWithProjects(t *testing.T) {
	s := ParseSettings(map[string]any{
		"notifications_enabled": float64(1),
		"projects":              map[string]any{"5": float64(1), "7": true},
	})
	if !s.NotificationsEnabled {
		t.Fatal("expected notifications enabled")
	}
	if !reflect.DeepEqual(s.Projects, []int64{5, 7}) {
		t.Fatalf("unexpected projects: %v", s.Projects)
	}
}

func TestParseSettings_Disabled(t *testing.T) {
	s := ParseSettings(map[string]any{
		"notifications_enabled": 0,
		"projects":              map[string]any{"5": 1},
	})
	if s.NotificationsEnabled {
		t.Fatal("expected notifications disabled")
	}
	if len(s.Projects) != 0 {
		t.Fatalf("disabled settings must carry no projects, got %v", s.Projects)
	}
}

func TestParseSettings_MalformedSelection(t *testing.T) {
	// Non-numeric keys are skipped, a non-map selection degrades to empty.
	s := ParseSettings(map[string]any{
		"notifications_enabled": "1",
		"projects":              map[string]any{"abc": 1, "9": "1", "": true},
	})
	if !reflect.DeepEqual(s.Projects, []int64{9}) {
		t.Fatalf("unexpected projects: %v", s.Projects)
	}

	s = ParseSettings(map[string]any{
		"notifications_enabled": true,
		"projects":              []any{"5"},
	})
	if len(s.Projects) != 0 {
		t.Fatalf("non-map selection must yield no projects, got %v", s.Projects)
	}
}

func TestSubscription_AllProjects(t *testing.T) {
	sub := RestrictedTo(nil)
	if !sub.All() {
		t.Fatal("zero rows must mean all projects")
	}
	if !sub.Includes(42) {
		t.Fatal("unrestricted subscription must include any project")
	}
}

func TestSubscription_RestrictedSubset(t *testing.T) {
	sub := RestrictedTo([]int64{1, 2})
	if sub.All() {
		t.Fatal("expected restricted variant")
	}
	if !sub.Includes(1) || !sub.Includes(2) {
		t.Fatal("listed projects must be included")
	}
	if sub.Includes(3) {
		t.Fatal("unlisted project must be excluded")
	}
}

func TestRecipientDisplayName(t *testing.T) {
	r := Recipient{Username: "jdoe", Name: "John Doe"}
	if got := r.DisplayName(); got != "John Doe" {
		t.Fatalf("expected full name, got %q", got)
	}
	r.Name = ""
	if got := r.DisplayName(); got != "jdoe" {
		t.Fatalf("expected username fallback, got %q", got)
	}
}
