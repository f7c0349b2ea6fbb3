package domain

import (
	"sort"
	"strconv"
)

// Settings is a user's stored notification preference state.
type Settings struct {
	NotificationsEnabled bool
	// Projects is the explicit opt-in subset. Empty means all projects.
	Projects []int64
}

// ParseSettings converts raw form values into Settings. Parsing is lenient:
// the enabled flag accepts bools, numbers and numeric strings; the project
// selection must be a map whose keys are numeric project ids, and any
// malformed key or non-map selection is skipped rather than failing the
// whole save.
func ParseSettings(values map[string]any) Settings {
	s := Settings{NotificationsEnabled: truthy(values["notifications_enabled"])}
	if !s.NotificationsEnabled {
		return s
	}

	selection, ok := values["projects"].(map[string]any)
	if !ok {
		return s
	}
	for key, v := range selection {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || !truthy(v) {
			continue
		}
		s.Projects = append(s.Projects, id)
	}
	sort.Slice(s.Projects, func(i, j int) bool { return s.Projects[i] < s.Projects[j] })
	return s
}

// truthy mirrors loose form/JSON semantics: true, non-zero numbers and the
// strings "1"/"true" count as set.
func truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val == "1" || val == "true"
	default:
		return false
	}
}
