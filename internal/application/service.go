package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"vn.io.arda/taskmail/internal/domain"
	"vn.io.arda/taskmail/internal/i18n"
	"vn.io.arda/taskmail/internal/mailer"
	"vn.io.arda/taskmail/internal/session"
)

// Service holds all email notification use-cases.
type Service struct {
	users      domain.UserRepository
	prefs      domain.PreferenceRepository
	mail       domain.Mailer
	composer   *mailer.Composer
	translator *i18n.Translator
}

// NewService creates a new application Service.
func NewService(users domain.UserRepository, prefs domain.PreferenceRepository, mail domain.Mailer, composer *mailer.Composer, translator *i18n.Translator) *Service {
	return &Service{users: users, prefs: prefs, mail: mail, composer: composer, translator: translator}
}

// RecipientsFor computes the final send list for a project: permission and
// enablement rules via the candidate query, the acting user from the
// session context excluded, then each candidate's subscription subset
// applied. Filtering only removes elements, so relative candidate order is
// preserved.
func (s *Service) RecipientsFor(ctx context.Context, projectID int64, exclude []int64) ([]domain.Recipient, error) {
	if actorID, ok := session.Actor(ctx); ok {
		exclude = append(exclude, actorID)
	}

	candidates, err := s.users.UsersWithNotification(ctx, projectID, exclude)
	if err != nil {
		return nil, fmt.Errorf("resolve candidate recipients: %w", err)
	}

	var recipients []domain.Recipient
	for _, user := range candidates {
		sub, err := s.prefs.SubscriptionFor(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("subscription for user %d: %w", user.ID, err)
		}
		if sub.Includes(projectID) {
			recipients = append(recipients, user)
		}
	}
	return recipients, nil
}

// SendEmails dispatches one localized email per recipient, in list order.
// Each recipient gets their own language; users without one get the
// application default, never the triggering actor's locale. A render or
// delivery failure for one recipient is logged and does not stop the rest
// of the batch; the failures come back joined.
func (s *Service) SendEmails(template string, users []domain.Recipient, data domain.Payload) error {
	defaultLocale := s.translator.Default()

	var errs []error
	for _, user := range users {
		locale := defaultLocale
		if user.Language != "" {
			locale = s.translator.Locale(user.Language)
		}

		subject := s.composer.Subject(locale, template, data)
		body, err := s.composer.Content(locale, template, data)
		if err != nil {
			log.Error().Err(err).Str("template", template).Int64("user", user.ID).Msg("render failed")
			errs = append(errs, err)
			continue
		}

		if err := s.mail.Send(user.Email, user.DisplayName(), subject, body); err != nil {
			log.Error().Err(err).Str("template", template).Int64("user", user.ID).Msg("delivery failed")
			errs = append(errs, err)
			continue
		}

		log.Debug().
			Str("template", template).
			Int64("user", user.ID).
			Str("locale", locale.Code()).
			Msg("notification email sent")
	}
	return errors.Join(errs...)
}

// Notify is the entry point for project events: resolve the recipient set
// for the job's project (the actor rides in on the context) and fan the
// email out.
func (s *Service) Notify(ctx context.Context, job domain.EmailJob) error {
	users, err := s.RecipientsFor(ctx, job.ProjectID, nil)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		log.Debug().
			Str("template", job.Template).
			Int64("project", job.ProjectID).
			Msg("no recipients, skipping")
		return nil
	}

	log.Info().
		Str("template", job.Template).
		Int64("project", job.ProjectID).
		Int("recipients", len(users)).
		Msg("dispatching notification emails")

	return s.SendEmails(job.Template, users, job.Data)
}

// SaveSettings replaces the user's notification preferences from raw form
// values. Malformed selection data degrades to an empty selection instead
// of failing the save.
func (s *Service) SaveSettings(ctx context.Context, userID int64, values map[string]any) error {
	settings := domain.ParseSettings(values)
	if err := s.prefs.ReplaceSettings(ctx, userID, settings); err != nil {
		return fmt.Errorf("save settings for user %d: %w", userID, err)
	}
	return nil
}

// ReadSettings returns the user's preferences in the shape the settings
// form consumes: the enabled flag plus one "project_<id>" key per
// subscription row. Unsubscribed projects are simply absent.
func (s *Service) ReadSettings(ctx context.Context, userID int64) (map[string]any, error) {
	settings, err := s.prefs.Settings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read settings for user %d: %w", userID, err)
	}

	out := map[string]any{"notifications_enabled": settings.NotificationsEnabled}
	for _, projectID := range settings.Projects {
		out["project_"+strconv.FormatInt(projectID, 10)] = true
	}
	return out, nil
}

// SendTestEmail sends a single test notification to the given user, in
// their own language. The "test" template has no subject table entry, so
// it exercises the generic fallback subject.
func (s *Service) SendTestEmail(ctx context.Context, userID int64) error {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return fmt.Errorf("user %d has no email address", userID)
	}
	return s.SendEmails("test", []domain.Recipient{user}, domain.Payload{})
}
