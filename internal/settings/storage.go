package settings

import "context"

// PluginNativeID is the storage namespace of the provider itself.
const PluginNativeID = ""

// Storage is a key/value store namespaced by device native id.
type Storage interface {
	// GetItem returns the stored value and whether it exists.
	GetItem(ctx context.Context, nativeID, key string) (string, bool, error)

	// SetItem stores a value, replacing any previous one.
	SetItem(ctx context.Context, nativeID, key, value string) error

	// RemoveItems deletes every value of a native id.
	RemoveItems(ctx context.Context, nativeID string) error
}
