package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"slate/config"
	"slate/infras/kafka"
	"slate/infras/otel"
	"slate/shared/constant"
)

// Event type labels carried in every payload.
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingUpdated   = "booking.updated"
	TypeBookingCancelled = "booking.cancelled"
	TypeChalanCreated    = "chalan.created"
	TypeChalanUpdated    = "chalan.updated"
	TypeChalanCancelled  = "chalan.cancelled"
)

type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	RoomID      string    `json:"room_id"`
	EditorID    string    `json:"editor_id,omitempty"`
	ProjectID   string    `json:"project_id"`
	BookingDate string    `json:"booking_date"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type ChalanEvent struct {
	Type         string    `json:"type"`
	ChalanID     string    `json:"chalan_id"`
	ChalanNumber string    `json:"chalan_number"`
	ProjectID    string    `json:"project_id"`
	BookingID    string    `json:"booking_id,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher emits lifecycle events to Kafka. Publishing is best effort: a
// broker failure is logged and swallowed, never propagated into the write
// path that produced the event.
type Publisher interface {
	PublishBooking(ctx context.Context, event BookingEvent)
	PublishChalan(ctx context.Context, event ChalanEvent)
}

type publisherImpl struct {
	cfg    *config.Config
	client kafka.Client
	otel   otel.Otel
}

func NewPublisher(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	return &publisherImpl{
		cfg:    cfg,
		client: client,
		otel:   otel,
	}
}

func (p *publisherImpl) PublishBooking(ctx context.Context, event BookingEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishBooking")
	defer scope.End()

	message := kafka.Message{Key: event.BookingID, Value: event}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.BookingEvents, message); err != nil {
		log.Error().Err(err).Str("type", event.Type).Str("booking_id", event.BookingID).Msg("failed to publish booking event")
	}
}

func (p *publisherImpl) PublishChalan(ctx context.Context, event ChalanEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".PublishChalan")
	defer scope.End()

	message := kafka.Message{Key: event.ChalanID, Value: event}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.ChalanEvents, message); err != nil {
		log.Error().Err(err).Str("type", event.Type).Str("chalan_id", event.ChalanID).Msg("failed to publish chalan event")
	}
}
