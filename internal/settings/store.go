package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
)

// ErrUnknownKey is returned when a key is not part of the form.
var ErrUnknownKey = errors.New("unknown setting key")

// Hook runs after a value has been put.
type Hook func(ctx context.Context, value string) error

// Setting is one rendered form field.
type Setting struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Value   string   `json:"value,omitempty"`
	Choices []string `json:"choices,omitempty"`
	Hide    bool     `json:"hide"`
}

// Store binds a schema to the storage of one native id. Choices and the
// error message live in memory only.
type Store struct {
	storage  Storage
	nativeID string
	schema   Schema

	mu       sync.RWMutex
	choices  map[Key][]string
	hooks    map[Key]Hook
	errorMsg string
}

// NewStore creates a form store for nativeID.
func NewStore(storage Storage, nativeID string, schema Schema) *Store {
	s := &Store{
		storage:  storage,
		nativeID: nativeID,
		schema:   schema,
		choices:  make(map[Key][]string),
		hooks:    make(map[Key]Hook),
	}
	for _, f := range schema.fields {
		if f.Choices != nil {
			s.choices[f.Key] = append([]string{}, f.Choices...)
		}
	}
	return s
}

// NativeID returns the storage namespace of the store.
func (s *Store) NativeID() string { return s.nativeID }

// OnPut registers a hook for key.
func (s *Store) OnPut(key Key, h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks[key] = h
}

// SetChoices replaces the choice list of key.
func (s *Store) SetChoices(key Key, choices []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choices[key] = append([]string{}, choices...)
}

// Choices returns the choice list of key.
func (s *Store) Choices(key Key) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.choices[key]...)
}

// SetError shows msg in the error field.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorMsg = msg
}

// ClearError hides the error field again.
func (s *Store) ClearError() { s.SetError("") }

// Error returns the current error message.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMsg
}

// Value returns the stored value of key, or "" when unset.
func (s *Store) Value(ctx context.Context, key Key) (string, error) {
	v, _, err := s.storage.GetItem(ctx, s.nativeID, string(key))
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return v, nil
}

// Credentials returns the stored instance id and API token.
func (s *Store) Credentials(ctx context.Context) (device.Credentials, error) {
	id, err := s.Value(ctx, KeyIDInstance)
	if err != nil {
		return device.Credentials{}, err
	}
	token, err := s.Value(ctx, KeyAPIToken)
	if err != nil {
		return device.Credentials{}, err
	}
	return device.Credentials{InstanceID: id, APIToken: token}, nil
}

// GetSettings renders the form with current values, choices and
// visibility. The error field becomes visible while an error is set.
func (s *Store) GetSettings(ctx context.Context) ([]Setting, error) {
	out := make([]Setting, 0, len(s.schema.fields))
	for _, f := range s.schema.fields {
		st := Setting{
			Key:   string(f.Key),
			Title: f.Title,
			Type:  string(f.Type),
			Hide:  f.Hide,
		}

		if f.Type.Stored() {
			v, err := s.Value(ctx, f.Key)
			if err != nil {
				return nil, err
			}
			st.Value = v
		}

		s.mu.RLock()
		st.Choices = append([]string(nil), s.choices[f.Key]...)
		if f.Key == KeyError && s.errorMsg != "" {
			st.Value = s.errorMsg
			st.Hide = false
		}
		s.mu.RUnlock()

		out = append(out, st)
	}
	return out, nil
}

// PutSetting stores value under key and runs the key's hook, if any.
func (s *Store) PutSetting(ctx context.Context, key Key, value string) error {
	f, ok := s.schema.Field(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if f.Type.Stored() {
		if err := s.storage.SetItem(ctx, s.nativeID, string(key), value); err != nil {
			return fmt.Errorf("put setting %s: %w", key, err)
		}
	}

	s.mu.RLock()
	hook := s.hooks[key]
	s.mu.RUnlock()

	if hook == nil {
		return nil
	}
	return hook(ctx, value)
}
