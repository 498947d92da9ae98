package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/oggyb/greenapi-notifier/internal/domain/notification"
	"github.com/oggyb/greenapi-notifier/internal/logging"
)

// abandonedReason is stored on notifications that never got a remote answer.
const abandonedReason = "abandoned: no response recorded before pending timeout"

// HistoryMaintenance keeps the notification history tidy. Each run fails
// notifications stuck in PENDING and prunes records past retention.
type HistoryMaintenance struct {
	repo           domain.Repository
	pendingTimeout time.Duration
	retention      time.Duration
	now            func() time.Time
	log            zerolog.Logger
}

// NewHistoryMaintenance creates the job. A zero retention keeps history
// forever; a zero pendingTimeout never fails pending records.
func NewHistoryMaintenance(repo domain.Repository, pendingTimeout, retention time.Duration) *HistoryMaintenance {
	return &HistoryMaintenance{
		repo:           repo,
		pendingTimeout: pendingTimeout,
		retention:      retention,
		now:            time.Now,
		log:            logging.Component("maintenance"),
	}
}

// ProcessBatch runs one maintenance pass.
func (m *HistoryMaintenance) ProcessBatch(ctx context.Context) error {
	now := m.now()
	var errs []error

	if m.pendingTimeout > 0 {
		n, err := m.repo.FailStale(ctx, now.Add(-m.pendingTimeout), abandonedReason)
		if err != nil {
			errs = append(errs, fmt.Errorf("fail stale notifications: %w", err))
		} else if n > 0 {
			m.log.Warn().Int64("count", n).Msg("stale pending notifications marked failed")
		}
	}

	if m.retention > 0 {
		n, err := m.repo.DeleteBefore(ctx, now.Add(-m.retention))
		if err != nil {
			errs = append(errs, fmt.Errorf("prune notifications: %w", err))
		} else if n > 0 {
			m.log.Info().Int64("count", n).Dur("retention", m.retention).Msg("old notifications pruned")
		}
	}

	return errors.Join(errs...)
}
