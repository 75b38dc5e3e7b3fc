package consumer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Eursukkul/hbnb-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
)

// EventRecorder stores a booking event. repository.BookingEventRepository
// satisfies it.
type EventRecorder interface {
	Record(ctx context.Context, ev *models.BookingEvent) error
}

// HistoryConsumer turns booking events from the broker into the
// booking_events history table.
type HistoryConsumer struct {
	events EventRecorder
}

func NewHistoryConsumer(events EventRecorder) *HistoryConsumer {
	return &HistoryConsumer{events: events}
}

// Start drains msgs in the background until the channel closes or ctx is
// done. Deliveries left unacked at shutdown are redelivered by the broker
// once the channel closes.
func (hc *HistoryConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go hc.run(ctx, msgs)
}

func (hc *HistoryConsumer) run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		if ctx.Err() != nil {
			log.Println("[HistoryConsumer] shutting down, stopping consumer")
			return
		}
		select {
		case <-ctx.Done():
			log.Println("[HistoryConsumer] shutting down, stopping consumer")
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("[HistoryConsumer] channel closed, stopping consumer")
				return
			}
			hc.handleMessage(ctx, msg)
		}
	}
}

func (hc *HistoryConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	var ev models.BookingEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil || ev.ID == "" || ev.BookingID == "" {
		log.Printf("[HistoryConsumer] dropping malformed message %q: %v", msg.MessageId, err)
		msg.Nack(false, false)
		return
	}

	// A message already taken off the channel is finished even during shutdown.
	if err := hc.events.Record(context.WithoutCancel(ctx), &ev); err != nil {
		log.Printf("[HistoryConsumer] failed to record event %s for booking %s: %v", ev.ID, ev.BookingID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[HistoryConsumer] recorded %s for booking %s", ev.Type, ev.BookingID)
	msg.Ack(false)
}
