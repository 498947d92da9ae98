package device

import (
	"context"
	"errors"
)

// ErrNotRegistered is returned when a native id is unknown to the registry.
var ErrNotRegistered = errors.New("device not registered")

// Registry is the device manager port. It records which native ids exist
// and how they were announced.
type Registry interface {
	// OnDeviceDiscovered creates or updates the device registration.
	OnDeviceDiscovered(ctx context.Context, m Manifest) error

	// NativeIDs lists every registered native id.
	NativeIDs(ctx context.Context) ([]string, error)

	// DeviceState returns the stored manifest or ErrNotRegistered.
	DeviceState(ctx context.Context, nativeID string) (*Manifest, error)

	// RemoveDevice deletes the registration. No-op if it does not exist.
	RemoveDevice(ctx context.Context, nativeID string) error
}
