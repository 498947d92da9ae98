package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/oggyb/greenapi-notifier/internal/cache"
	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	domain "github.com/oggyb/greenapi-notifier/internal/domain/notification"
	"github.com/oggyb/greenapi-notifier/internal/greenapi"
	"github.com/oggyb/greenapi-notifier/internal/logging"
	"github.com/oggyb/greenapi-notifier/internal/media"
	"github.com/oggyb/greenapi-notifier/internal/metrics"
	"github.com/oggyb/greenapi-notifier/internal/settings"
)

// sentCacheTTL is how long a remote message id stays in the sent cache.
const sentCacheTTL = 24 * time.Hour

// Deps are the collaborators shared by the provider and its notifiers.
// Notifications and Cache are optional.
type Deps struct {
	Storage       settings.Storage
	Client        greenapi.Client
	Resolver      media.Resolver
	Notifications domain.Repository
	Cache         cache.Cache
}

// Notifier sends notifications to one target contact with its own copy of
// the account credentials.
type Notifier struct {
	nativeID string
	store    *settings.Store
	deps     Deps
	log      zerolog.Logger
}

// newNotifier builds a notifier. It performs no remote calls.
func newNotifier(nativeID string, deps Deps) *Notifier {
	n := &Notifier{
		nativeID: nativeID,
		store:    settings.NewStore(deps.Storage, nativeID, settings.BuildSchema(false, false)),
		deps:     deps,
		log:      logging.Component("notifier").With().Str("native_id", nativeID).Logger(),
	}
	n.store.OnPut(settings.KeyLoadContacts, n.loadContacts)
	return n
}

func (n *Notifier) NativeID() string { return n.nativeID }

// GetSettings renders the device form.
func (n *Notifier) GetSettings(ctx context.Context) ([]settings.Setting, error) {
	return n.store.GetSettings(ctx)
}

// PutSetting stores one device setting. "loadContacts" reloads the target
// choices with the device's own credentials.
func (n *Notifier) PutSetting(ctx context.Context, key, value string) error {
	return n.store.PutSetting(ctx, settings.Key(key), value)
}

// Credentials returns the device's stored credentials.
func (n *Notifier) Credentials(ctx context.Context) (device.Credentials, error) {
	return n.store.Credentials(ctx)
}

// Target returns the device's stored encoded target.
func (n *Notifier) Target(ctx context.Context) (string, error) {
	return n.store.Value(ctx, settings.KeyTarget)
}

func (n *Notifier) loadContacts(ctx context.Context, _ string) error {
	creds, err := n.store.Credentials(ctx)
	if err != nil {
		return err
	}

	targets, err := GetTargets(ctx, n.deps.Client, creds)
	if err != nil {
		n.log.Error().Err(err).Msg("failed to load contacts")
		n.store.SetError(err.Error())
		return err
	}

	n.store.ClearError()
	n.store.SetChoices(settings.KeyTarget, targets)
	return nil
}

// SendNotification relays a notification to the stored target. With media
// it sends the file by URL and uses the message as caption; otherwise it
// sends a text message. icon is accepted and ignored.
//
// A malformed target fails with device.ErrInvalidTarget before any request.
// Every request is recorded, and remote failures are logged and returned
// with the failed record.
func (n *Notifier) SendNotification(ctx context.Context, title string, opts *domain.Options, m *media.Media, icon *media.Media) (*domain.Notification, error) {
	target, err := n.Target(ctx)
	if err != nil {
		return nil, err
	}
	chatID, err := device.ChatID(target)
	if err != nil {
		n.log.Warn().Err(err).Msg("refusing to send")
		return nil, err
	}

	creds, err := n.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	message := domain.ComposeMessage(title, opts)
	rec, err := domain.New(n.nativeID, chatID, message)
	if err != nil {
		return nil, err
	}

	if m != nil {
		url := m.URL
		if !m.IsURL() {
			if n.deps.Resolver == nil {
				return nil, fmt.Errorf("resolve media: %w", media.ErrUnsupportedMedia)
			}
			url, err = n.deps.Resolver.ConvertToURL(ctx, m, media.MimeImage)
			if err != nil {
				n.log.Error().Err(err).Msg("failed to resolve media")
				return nil, fmt.Errorf("resolve media: %w", err)
			}
		}
		rec.AttachFile(url)
	}

	n.save(ctx, rec)

	var resp *greenapi.SendResponse
	if rec.Kind == domain.KindFile {
		resp, err = n.deps.Client.SendFileByURL(ctx, creds, greenapi.SendFileByURLRequest{
			ChatID:   chatID,
			Caption:  message,
			URLFile:  rec.FileURL,
			FileName: domain.FileName,
		})
	} else {
		resp, err = n.deps.Client.SendMessage(ctx, creds, greenapi.SendMessageRequest{
			ChatID:  chatID,
			Message: message,
		})
	}
	metrics.IncNotification(string(rec.Kind), err == nil)

	if err != nil {
		raw := greenapi.RawBody(err)
		if resp != nil {
			raw = resp.Raw
		}
		rec.MarkFailed(raw, err)
		n.update(ctx, rec)

		n.log.Error().Err(err).Str("notification_id", rec.ID.String()).Msg("error sending notification")
		return rec, fmt.Errorf("send notification %s: %w", rec.ID, err)
	}

	rec.MarkSent(resp.IDMessage, resp.Raw)
	n.update(ctx, rec)
	n.cacheSent(ctx, rec)

	n.log.Info().
		Str("notification_id", rec.ID.String()).
		Str("id_message", resp.IDMessage).
		Str("kind", string(rec.Kind)).
		Msg("notification sent")

	return rec, nil
}

// Notifications returns a page of this device's send history.
func (n *Notifier) Notifications(ctx context.Context, page, limit int) ([]*domain.Notification, int64, error) {
	if n.deps.Notifications == nil {
		return nil, 0, nil
	}
	return n.deps.Notifications.ListByDevice(ctx, n.nativeID, page, limit)
}

func (n *Notifier) save(ctx context.Context, rec *domain.Notification) {
	if n.deps.Notifications == nil {
		return
	}
	if err := n.deps.Notifications.Save(ctx, rec); err != nil {
		n.log.Error().Err(err).Str("notification_id", rec.ID.String()).Msg("failed to persist notification")
	}
}

func (n *Notifier) update(ctx context.Context, rec *domain.Notification) {
	if n.deps.Notifications == nil {
		return
	}
	if err := n.deps.Notifications.UpdateStatus(ctx, rec); err != nil {
		n.log.Error().Err(err).
			Str("notification_id", rec.ID.String()).
			Str("status", string(rec.Status)).
			Msg("failed to persist notification status")
	}
}

func (n *Notifier) cacheSent(ctx context.Context, rec *domain.Notification) {
	if n.deps.Cache == nil || rec.MessageID == "" {
		return
	}
	sentAt := time.Now().Format(time.RFC3339)
	if rec.SentAt != nil {
		sentAt = rec.SentAt.Format(time.RFC3339)
	}
	if err := n.deps.Cache.Set(ctx, cache.SentMessages.Key(rec.MessageID), sentAt, sentCacheTTL); err != nil {
		n.log.Warn().Err(err).Str("id_message", rec.MessageID).Msg("failed to cache sent message")
	}
}
