// internal/directory/directory.go
package directory

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wolfden/werewolf-client/internal/api"
	"github.com/wolfden/werewolf-client/internal/models"
)

// Directory polls the available-rooms endpoint on a fixed interval while the
// directory view is active. A fetch failure is transient and retried on the
// next tick; Err stays set only while failures persist and clears on the next
// success.
type Directory struct {
	api      *api.Client
	logger   *logrus.Logger
	interval time.Duration

	// OnRooms receives each fresh room list. Lists are rebuilt per poll and
	// must not be retained by the receiver.
	OnRooms func(rooms []models.RoomSummary)

	mu      sync.Mutex
	err     error
	cancel  context.CancelFunc
	stopped chan struct{}
}

// New builds a directory poller. interval is typically config.PollInterval.
func New(apiClient *api.Client, interval time.Duration, logger *logrus.Logger) *Directory {
	return &Directory{
		api:      apiClient,
		logger:   logger,
		interval: interval,
	}
}

// Start begins polling: one immediate fetch, then one per interval. Calling
// Start while running is a no-op.
func (d *Directory) Start(ctx context.Context) {
	d.mu.Lock()
	if d.cancel != nil {
		d.mu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	stopped := make(chan struct{})
	d.stopped = stopped
	d.mu.Unlock()

	go d.loop(pollCtx, stopped)
}

// Stop deterministically ends polling; no fetch or callback fires after it
// returns. Safe to call when never started or already stopped.
func (d *Directory) Stop() {
	d.mu.Lock()
	cancel := d.cancel
	stopped := d.stopped
	d.cancel = nil
	d.stopped = nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-stopped
}

// Err returns the sticky failure state: non-nil while fetches keep failing,
// nil once one succeeds.
func (d *Directory) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Directory) loop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	d.fetch(ctx)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetch(ctx)
		}
	}
}

func (d *Directory) fetch(ctx context.Context) {
	rooms, err := d.api.AvailableRooms(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		d.logger.Warnf("room poll failed: %v", err)
		d.mu.Lock()
		d.err = err
		d.mu.Unlock()
		return
	}

	d.mu.Lock()
	d.err = nil
	d.mu.Unlock()

	if d.OnRooms != nil {
		d.OnRooms(rooms)
	}
}
