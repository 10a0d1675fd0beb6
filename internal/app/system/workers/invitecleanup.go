// internal/app/system/workers/invitecleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	invitationstore "github.com/pitchside/pitchside/internal/app/store/invitations"
	"go.uber.org/zap"
)

// InviteCleanup is a background worker that flips pending invitations past
// their deadline to expired. Respond already does this lazily for the
// invitation being answered; the sweep keeps listings honest for the rest.
type InviteCleanup struct {
	invitations *invitationstore.Store
	log         *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

func NewInviteCleanup(invStore *invitationstore.Store, logger *zap.Logger, interval time.Duration) *InviteCleanup {
	return &InviteCleanup{
		invitations: invStore,
		log:         logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *InviteCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("invitation cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *InviteCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("invitation cleanup worker stopped")
}

func (w *InviteCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *InviteCleanup) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.invitations.ExpirePending(ctx)
	if err != nil {
		w.log.Error("failed to expire invitations", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("expired stale invitations", zap.Int64("count", count))
	}
}
