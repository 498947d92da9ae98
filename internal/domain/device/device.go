// Package device holds the notifier device model: account credentials and
// the encoded contact used as a notification target.
package device

import (
	"errors"
	"fmt"
	"strings"
)

// Type and interface names announced to the device manager.
const (
	TypeNotifier = "Notifier"

	InterfaceSettings = "Settings"
	InterfaceNotifier = "Notifier"
)

// NamePrefix is prepended to the contact name to build a device name.
const NamePrefix = "GreenAPI"

var (
	// ErrInvalidTarget is returned when a target is not encoded as "name:id".
	ErrInvalidTarget = errors.New("invalid target: expected \"name:id\"")
)

// Credentials identify a Green API account instance.
type Credentials struct {
	InstanceID string
	APIToken   string
}

// Contact is a remote contact. It is encoded as "name:id" when used as a
// selectable target.
type Contact struct {
	Name string
	ID   string
}

// Encode returns the "name:id" form of the contact.
func (c Contact) Encode() string {
	return fmt.Sprintf("%s:%s", c.Name, c.ID)
}

// ParseTarget splits an encoded target on the first colon. The id is
// everything after that colon and must not be empty.
func ParseTarget(target string) (Contact, error) {
	name, id, ok := strings.Cut(target, ":")
	if !ok || id == "" {
		return Contact{}, fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return Contact{Name: name, ID: id}, nil
}

// ChatID returns the remote chat id of an encoded target.
func ChatID(target string) (string, error) {
	c, err := ParseTarget(target)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// DisplayName builds the device name for an encoded target.
func DisplayName(target string) string {
	name, _, _ := strings.Cut(target, ":")
	return fmt.Sprintf("%s %s", NamePrefix, name)
}

// Manifest is what gets announced to the device manager when a device is
// created or updated.
type Manifest struct {
	NativeID   string
	Name       string
	Interfaces []string
	Type       string
	Info       map[string]string
}
