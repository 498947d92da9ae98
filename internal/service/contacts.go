package service

import (
	"context"
	"fmt"

	"github.com/oggyb/greenapi-notifier/internal/domain/device"
	"github.com/oggyb/greenapi-notifier/internal/greenapi"
	"github.com/oggyb/greenapi-notifier/internal/logging"
	"github.com/oggyb/greenapi-notifier/internal/metrics"
)

// GetTargets fetches the account's contacts and encodes each one as
// "name:id". Contacts whose encoding would not parse back to their own id,
// such as names containing a colon, are skipped. Remote errors are returned
// to the caller.
func GetTargets(ctx context.Context, client greenapi.Client, creds device.Credentials) ([]string, error) {
	contacts, err := client.GetContacts(ctx, creds)
	metrics.IncContactLoad(err == nil)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		target := device.Contact{Name: c.Name, ID: c.ID}.Encode()
		if parsed, err := device.ParseTarget(target); err != nil || parsed.ID != c.ID {
			log := logging.Component("contacts")
			log.Warn().
				Str("name", c.Name).
				Str("id", c.ID).
				Msg("skipping contact that cannot be encoded as a target")
			continue
		}
		out = append(out, target)
	}
	return out, nil
}
