package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/Eursukkul/hbnb-service/internal/models"
)

type bookingCompleter interface {
	CompleteFinished(ctx context.Context) ([]models.Booking, error)
}

// Scheduler periodically moves confirmed stays past their check-out date to
// completed.
type Scheduler struct {
	bookings bookingCompleter
	interval time.Duration
}

func New(bookings bookingCompleter, interval time.Duration) *Scheduler {
	return &Scheduler{bookings: bookings, interval: interval}
}

// Start runs one pass immediately and then one per interval until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[Scheduler] started, interval %s", s.interval)
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("[Scheduler] stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	done, err := s.bookings.CompleteFinished(ctx)
	if err != nil {
		log.Printf("[Scheduler] failed to complete finished bookings: %v", err)
		return
	}

	for _, b := range done {
		log.Printf("[Scheduler] booking %s completed (place %s, tenant %s)", b.ID, b.PlaceID, b.TenantID)
	}
}
