package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	"github.com/oggyb/greenapi-notifier/internal/logging"
	"github.com/oggyb/greenapi-notifier/internal/metrics"
	"github.com/oggyb/greenapi-notifier/internal/settings"
)

// CreatorName is the label of the device creator shown by the UI.
const CreatorName = "Greenapi notifier"

// maxIDAttempts bounds native id allocation.
const maxIDAttempts = 16

var (
	// ErrDeviceNotFound is returned for native ids that are not registered.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrIDExhausted is returned when no unused native id could be drawn.
	ErrIDExhausted = errors.New("could not allocate an unused native id")
)

// Provider holds the account credentials and provisions notifier devices.
// It never sends notifications itself.
type Provider struct {
	registry device.Registry
	catalog  *Catalog
	deps     Deps
	store    *settings.Store
	log      zerolog.Logger

	// newID draws a candidate native id.
	newID func() (string, error)
}

// NewProvider wires a provider to its registry, device catalog and the
// collaborators shared with notifiers.
func NewProvider(registry device.Registry, catalog *Catalog, deps Deps) *Provider {
	if catalog == nil {
		catalog = NewCatalog()
	}
	p := &Provider{
		registry: registry,
		catalog:  catalog,
		deps:     deps,
		store:    settings.NewStore(deps.Storage, settings.PluginNativeID, settings.BuildSchema(true, false)),
		log:      logging.Component("provider"),
		newID:    randomID,
	}
	p.store.OnPut(settings.KeyLoadContacts, p.loadContacts)
	return p
}

func randomID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Seed stores creds as the provider credentials unless some are stored
// already.
func (p *Provider) Seed(ctx context.Context, creds device.Credentials) error {
	if creds.InstanceID == "" || creds.APIToken == "" {
		return nil
	}
	current, err := p.store.Credentials(ctx)
	if err != nil {
		return err
	}
	if current.InstanceID != "" || current.APIToken != "" {
		return nil
	}

	if err := p.store.PutSetting(ctx, settings.KeyIDInstance, creds.InstanceID); err != nil {
		return err
	}
	if err := p.store.PutSetting(ctx, settings.KeyAPIToken, creds.APIToken); err != nil {
		return err
	}
	p.log.Info().Str("instance_id", creds.InstanceID).Msg("provider credentials seeded from config")
	return nil
}

// GetSettings renders the plugin-level form.
func (p *Provider) GetSettings(ctx context.Context) ([]settings.Setting, error) {
	return p.store.GetSettings(ctx)
}

// PutSetting stores one plugin setting. "loadContacts" fetches the contact
// list and attaches it to the button's choices.
func (p *Provider) PutSetting(ctx context.Context, key, value string) error {
	return p.store.PutSetting(ctx, settings.Key(key), value)
}

// Credentials returns the current provider credentials.
func (p *Provider) Credentials(ctx context.Context) (device.Credentials, error) {
	return p.store.Credentials(ctx)
}

func (p *Provider) loadContacts(ctx context.Context, _ string) error {
	creds, err := p.store.Credentials(ctx)
	if err != nil {
		return err
	}

	targets, err := GetTargets(ctx, p.deps.Client, creds)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to load contacts")
		p.store.SetError(err.Error())
		return err
	}

	p.store.ClearError()
	p.store.SetChoices(settings.KeyLoadContacts, targets)
	return nil
}

// GetCreateDeviceSettings builds the device-creation form with the target
// choices fetched live with the provider credentials. If the fetch fails
// the form is still returned with the error field shown.
func (p *Provider) GetCreateDeviceSettings(ctx context.Context) ([]settings.Setting, error) {
	form := settings.NewStore(p.deps.Storage, settings.PluginNativeID, settings.BuildSchema(false, true))

	creds, err := p.store.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := GetTargets(ctx, p.deps.Client, creds)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to load contacts for device creation")
		form.SetError(err.Error())
	} else {
		p.log.Debug().Int("contacts", len(targets)).Msg("contacts loaded for device creation")
		form.SetChoices(settings.KeyTarget, targets)
	}

	return form.GetSettings(ctx)
}

// GetDevice returns the notifier for nativeID, constructing and caching it
// on first access.
func (p *Provider) GetDevice(nativeID string) *Notifier {
	return p.catalog.GetOrCreate(nativeID, func() *Notifier {
		return newNotifier(nativeID, p.deps)
	})
}

// Device returns the notifier of a registered device.
func (p *Provider) Device(ctx context.Context, nativeID string) (*Notifier, error) {
	if _, err := p.registry.DeviceState(ctx, nativeID); err != nil {
		if errors.Is(err, device.ErrNotRegistered) {
			return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, nativeID)
		}
		return nil, err
	}
	return p.GetDevice(nativeID), nil
}

// Devices lists the registered devices.
func (p *Provider) Devices(ctx context.Context) ([]device.Manifest, error) {
	ids, err := p.registry.NativeIDs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]device.Manifest, 0, len(ids))
	for _, id := range ids {
		m, err := p.registry.DeviceState(ctx, id)
		if err != nil {
			if errors.Is(err, device.ErrNotRegistered) {
				continue
			}
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}

// CreateDevice registers a notifier for values["target"], copies the
// current provider credentials into it and restricts its target choices to
// the selected target. An empty nativeID gets a fresh random one.
func (p *Provider) CreateDevice(ctx context.Context, values map[string]string, nativeID string) (string, error) {
	target := values[string(settings.KeyTarget)]
	if _, err := device.ParseTarget(target); err != nil {
		return "", err
	}

	if nativeID == "" {
		id, err := p.allocateID(ctx)
		if err != nil {
			return "", err
		}
		nativeID = id
	}

	if err := p.updateDevice(ctx, nativeID, device.DisplayName(target)); err != nil {
		return "", err
	}

	n := p.GetDevice(nativeID)

	creds, err := p.store.Credentials(ctx)
	if err != nil {
		return "", err
	}
	if err := n.store.PutSetting(ctx, settings.KeyAPIToken, creds.APIToken); err != nil {
		return "", err
	}
	if err := n.store.PutSetting(ctx, settings.KeyIDInstance, creds.InstanceID); err != nil {
		return "", err
	}
	if err := n.store.PutSetting(ctx, settings.KeyTarget, target); err != nil {
		return "", err
	}
	n.store.SetChoices(settings.KeyTarget, []string{target})

	metrics.IncDeviceCreated()
	p.log.Info().Str("native_id", nativeID).Str("target", target).Msg("notifier device created")

	return n.NativeID(), nil
}

// updateDevice announces the device, keeping the info of an existing
// registration.
func (p *Provider) updateDevice(ctx context.Context, nativeID, name string) error {
	m := device.Manifest{
		NativeID:   nativeID,
		Name:       name,
		Interfaces: []string{device.InterfaceSettings, device.InterfaceNotifier},
		Type:       device.TypeNotifier,
	}

	existing, err := p.registry.DeviceState(ctx, nativeID)
	switch {
	case err == nil:
		m.Info = existing.Info
	case !errors.Is(err, device.ErrNotRegistered):
		return err
	}

	if err := p.registry.OnDeviceDiscovered(ctx, m); err != nil {
		return fmt.Errorf("register device %s: %w", nativeID, err)
	}
	return nil
}

func (p *Provider) allocateID(ctx context.Context) (string, error) {
	for range maxIDAttempts {
		id, err := p.newID()
		if err != nil {
			return "", fmt.Errorf("allocate native id: %w", err)
		}
		if p.catalog.Has(id) {
			continue
		}
		_, err = p.registry.DeviceState(ctx, id)
		if errors.Is(err, device.ErrNotRegistered) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrIDExhausted
}

// ReleaseDevice removes a device: registration, stored settings, send
// history and the cached notifier.
func (p *Provider) ReleaseDevice(ctx context.Context, nativeID string) error {
	if _, err := p.Device(ctx, nativeID); err != nil {
		return err
	}

	if err := p.registry.RemoveDevice(ctx, nativeID); err != nil {
		return fmt.Errorf("remove device %s: %w", nativeID, err)
	}
	if err := p.deps.Storage.RemoveItems(ctx, nativeID); err != nil {
		return fmt.Errorf("remove settings of %s: %w", nativeID, err)
	}
	if p.deps.Notifications != nil {
		if err := p.deps.Notifications.DeleteByDevice(ctx, nativeID); err != nil {
			p.log.Warn().Err(err).Str("native_id", nativeID).Msg("failed to delete notification history")
		}
	}
	p.catalog.Remove(nativeID)

	p.log.Info().Str("native_id", nativeID).Msg("notifier device released")
	return nil
}
