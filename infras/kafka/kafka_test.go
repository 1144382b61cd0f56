package kafka_test

import (
	"context"
	"hotel/config"
	"hotel/infras/kafka"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	BookingID string `json:"booking_id"`
	Event     string `json:"event"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "booking-1", Value: bookingEvent{BookingID: "booking-1", Event: "checked_in"}}

	msg, err := message.ToKafkaMessage("hotel.booking.events")
	require.NoError(t, err)
	assert.Equal(t, "hotel.booking.events", msg.Topic)
	assert.Equal(t, []byte("booking-1"), msg.Key)

	decoded, err := kafka.Decode[bookingEvent](msg)
	require.NoError(t, err)
	assert.Equal(t, "checked_in", decoded.Event)

	_, err = kafka.Decode[bookingEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.NoError(t, client.SendMessages(context.Background(), "topic", kafka.Message{Key: "k", Value: "v"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client.Consume(ctx, "", "topic", func(context.Context, kafkaGo.Message) error {
		t.Fatal("handler must not be called")

		return nil
	})

	assert.NoError(t, client.Close())
}
