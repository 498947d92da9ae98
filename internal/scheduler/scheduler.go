// Package scheduler runs a periodic job behind a start/stop control loop.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/oggyb/greenapi-notifier/internal/logging"
)

// BatchProcessor is the periodic work.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context) error
}

// SchedulerService is the control surface of a scheduler.
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool
	Close() error
}

const (
	// DefaultInterval is used when no interval is configured.
	DefaultInterval = 10 * time.Minute
	// DefaultBatchTimeout bounds one ProcessBatch call.
	DefaultBatchTimeout = 30 * time.Second

	controlTimeout = 2 * time.Second
)

var (
	ErrNotResponding = errors.New("scheduler: control loop not responding")
	ErrNoAck         = errors.New("scheduler: acknowledgement timeout")
	ErrClosed        = errors.New("scheduler: closed")
)

type command int

const (
	cmdStart command = iota
	cmdStop
	cmdStatus
	cmdClose
)

type request struct {
	cmd   command
	reply chan bool
}

// schedulerService keeps its state inside the loop goroutine.
type schedulerService struct {
	name         string
	job          BatchProcessor
	interval     time.Duration
	batchTimeout time.Duration
	requests     chan request
	closed       chan struct{}
	log          zerolog.Logger
}

// NewSchedulerService starts the control loop for job. Non-positive
// durations fall back to the defaults. The scheduler starts stopped.
func NewSchedulerService(name string, job BatchProcessor, interval, batchTimeout time.Duration) SchedulerService {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	s := &schedulerService{
		name:         name,
		job:          job,
		interval:     interval,
		batchTimeout: batchTimeout,
		requests:     make(chan request),
		closed:       make(chan struct{}),
		log:          logging.Component("scheduler").With().Str("job", name).Logger(),
	}
	go s.loop()
	return s
}

// Start enables ticks and returns once the loop has acknowledged it.
func (s *schedulerService) Start() error {
	_, err := s.send(cmdStart)
	return err
}

// Stop disables ticks. A batch in flight is awaited (bounded by the batch
// timeout) before the loop acknowledges.
func (s *schedulerService) Stop() error {
	_, err := s.send(cmdStop)
	return err
}

// IsRunning reports whether ticks are enabled.
func (s *schedulerService) IsRunning() bool {
	running, err := s.send(cmdStatus)
	return err == nil && running
}

// Close stops the scheduler and ends its control loop once any batch in
// flight has finished. Later calls to any method return ErrClosed, except
// Close itself which returns nil.
func (s *schedulerService) Close() error {
	_, err := s.send(cmdClose)
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}

func (s *schedulerService) send(cmd command) (bool, error) {
	req := request{cmd: cmd, reply: make(chan bool, 1)}

	select {
	case s.requests <- req:
	case <-s.closed:
		return false, ErrClosed
	case <-time.After(controlTimeout):
		return false, ErrNotResponding
	}

	select {
	case v := <-req.reply:
		return v, nil
	case <-time.After(controlTimeout + s.batchTimeout):
		return false, ErrNoAck
	}
}

func (s *schedulerService) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.closed)

	running := false
	done := make(chan error, 1)
	busy := false
	var waiting []chan bool

	for {
		select {
		case req := <-s.requests:
			switch req.cmd {
			case cmdStart:
				if !running {
					s.log.Info().Dur("interval", s.interval).Dur("batch_timeout", s.batchTimeout).Msg("scheduler started")
				}
				running = true
				req.reply <- true
			case cmdStop:
				if running {
					s.log.Info().Bool("in_batch", busy).Msg("scheduler stopping")
				}
				running = false
				if busy {
					waiting = append(waiting, req.reply)
				} else {
					req.reply <- true
				}
			case cmdStatus:
				req.reply <- running
			case cmdClose:
				running = false
				if busy {
					s.log.Info().Msg("scheduler closing, waiting for batch")
					<-done
				}
				for _, reply := range waiting {
					reply <- true
				}
				req.reply <- true
				s.log.Info().Msg("scheduler closed")
				return
			}

		case <-ticker.C:
			if !running || busy {
				continue
			}
			busy = true
			go s.run(done)

		case err := <-done:
			busy = false
			if err != nil {
				s.log.Error().Err(err).Msg("batch failed")
			} else {
				s.log.Debug().Msg("batch completed")
			}
			for _, reply := range waiting {
				reply <- true
			}
			waiting = nil
		}
	}
}

func (s *schedulerService) run(done chan<- error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.batchTimeout)
	defer cancel()
	done <- s.job.ProcessBatch(ctx)
}
