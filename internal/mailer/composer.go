// Package mailer turns a notification template id plus its payload into a
// localized subject line and a rendered HTML body.
package mailer

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"vn.io.arda/taskmail/internal/domain"
	"vn.io.arda/taskmail/internal/i18n"
)

// ErrUnknownTemplate is returned by Content for template ids without a
// body template. Subject lookups never fail; they fall back to a generic
// subject instead.
var ErrUnknownTemplate = errors.New("unknown notification template")

//go:embed templates/notification/*.html
var templatesFS embed.FS

type subjectKind int

const (
	// taskSubject renders "[project][label] title (#id)" from the task payload.
	taskSubject subjectKind = iota
	// projectSubject renders "[project][label]" for project-level digests.
	projectSubject
)

type subjectSpec struct {
	label string
	kind  subjectKind
}

// subjects maps each template id to its localized label and subject form.
// Adding a template is a data change here plus a body template file.
var subjects = map[string]subjectSpec{
	"file_creation":        {"New attachment", taskSubject},
	"comment_creation":     {"New comment", taskSubject},
	"comment_update":       {"Comment updated", taskSubject},
	"subtask_creation":     {"New subtask", taskSubject},
	"subtask_update":       {"Subtask updated", taskSubject},
	"task_creation":        {"New task", taskSubject},
	"task_update":          {"Task updated", taskSubject},
	"task_close":           {"Task closed", taskSubject},
	"task_open":            {"Task opened", taskSubject},
	"task_move_column":     {"Column change", taskSubject},
	"task_move_position":   {"Position change", taskSubject},
	"task_assignee_change": {"Assignee change", taskSubject},
	"task_due":             {"Due tasks", projectSubject},
}

// Composer resolves subjects and renders mail bodies.
type Composer struct {
	appName string
	baseURL string
	// tmpl holds the parsed body templates. It is never executed directly;
	// each render clones it to bind the recipient's locale into the "t" func.
	tmpl *template.Template
}

// NewComposer parses the embedded body templates. baseURL is the public
// application URL injected into every payload as application_url.
func NewComposer(appName, baseURL string) (*Composer, error) {
	tmpl, err := template.New("notification").
		Funcs(template.FuncMap{"t": func(key string) string { return key }}).
		ParseFS(templatesFS, "templates/notification/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse notification templates: %w", err)
	}
	return &Composer{appName: appName, baseURL: baseURL, tmpl: tmpl}, nil
}

// Subject builds the mail subject for a template under the given locale.
// Unrecognized template ids fall back to a generic application subject.
func (c *Composer) Subject(loc *i18n.Locale, tplName string, data domain.Payload) string {
	spec, ok := subjects[tplName]
	if !ok {
		return fmt.Sprintf("[%s] %s", c.appName, loc.Tr("Notification"))
	}
	switch spec.kind {
	case projectSubject:
		return fmt.Sprintf("[%s][%s]", data.ProjectName(), loc.Tr(spec.label))
	default:
		task := data.Task()
		return fmt.Sprintf("[%s][%s] %s (#%d)", task.ProjectName, loc.Tr(spec.label), task.Title, task.ID)
	}
}

// Content renders the body template for tplName with the payload augmented
// with application_url, localizing template labels through loc.
func (c *Composer) Content(loc *i18n.Locale, tplName string, data domain.Payload) (string, error) {
	name := tplName + ".html"
	if c.tmpl.Lookup(name) == nil {
		return "", fmt.Errorf("%w: notification/%s", ErrUnknownTemplate, tplName)
	}

	clone, err := c.tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("clone notification templates: %w", err)
	}
	clone = clone.Funcs(template.FuncMap{"t": loc.Tr})

	payload := make(domain.Payload, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["application_url"] = c.baseURL

	var buf bytes.Buffer
	if err := clone.ExecuteTemplate(&buf, name, payload); err != nil {
		return "", fmt.Errorf("render notification/%s: %w", tplName, err)
	}
	return buf.String(), nil
}
