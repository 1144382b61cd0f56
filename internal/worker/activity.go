package worker

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const activityGroupSuffix = ".activities"

// ActivityRecorder stores every booking lifecycle event published on the booking events topic.
type ActivityRecorder struct {
	repo  bookingRepo.Booking
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewActivityRecorder(repo bookingRepo.Booking, kafka kafka.Client, cfg *config.Config, otel otel.Otel) *ActivityRecorder {
	return &ActivityRecorder{
		repo:  repo,
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

// Run consumes until ctx is cancelled.
func (w *ActivityRecorder) Run(ctx context.Context) {
	topic := w.cfg.Kafka.Topic.BookingEvents

	log.Info().Str("topic", topic).Msg("booking activity recorder started")

	w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup+activityGroupSuffix, topic, w.Handle)
}

// Handle stores one message. Undecodable messages and redeliveries are acknowledged without a write.
func (w *ActivityRecorder) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.RecordActivity")
	defer scope.End()
	defer scope.TraceIfError(err)

	event, err := kafka.Decode[model.LifecycleEvent](message)
	if err != nil {
		log.Warn().Err(err).Str("key", string(message.Key)).Msg("skipping malformed booking event")

		return nil
	}

	if event.ID == constant.Empty || event.BookingID == constant.Empty {
		log.Warn().Str("key", string(message.Key)).Msg("skipping booking event without id")

		return nil
	}

	actor := event.Actor
	if actor == constant.Empty {
		actor = constant.SystemUser
	}

	activity := model.Activity{
		ID:         event.ID,
		BookingID:  event.BookingID,
		Event:      event.Event,
		Actor:      actor,
		Payload:    string(message.Value),
		OccurredAt: event.OccurredAt,
	}

	if err = w.repo.InsertActivity(ctx, activity); err != nil {
		if failure.IsUniqueViolation(err) {
			log.Debug().Str("event_id", event.ID).Msg("booking event already recorded")

			return nil
		}

		log.Error().Err(err).Str("event_id", event.ID).Msg("failed to record booking activity")

		return fmt.Errorf("failed to record booking activity: %w", err)
	}

	log.Debug().Str("booking_id", event.BookingID).Str("event", string(event.Event)).Msg("booking activity recorded")

	return nil
}
