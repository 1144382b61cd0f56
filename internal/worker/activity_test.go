package worker_test

import (
	"context"
	"errors"
	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/worker"
	"hotel/shared/constant"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func eventMessage(t *testing.T, event model.LifecycleEvent) kafkaGo.Message {
	t.Helper()

	value, err := json.Marshal(event)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte(event.BookingID), Value: value}
}

func TestActivityRecorder_Handle(t *testing.T) {
	occurredAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	event := model.LifecycleEvent{
		ID:         "evt-1",
		BookingID:  "bk-1",
		Event:      model.EventCheckedIn,
		Status:     model.StatusCheckedIn,
		OccurredAt: occurredAt,
	}

	tests := []struct {
		name      string
		message   func(t *testing.T) kafkaGo.Message
		setupMock func(repo *mocks.MockBooking)
		wantErr   bool
	}{
		{
			name:    "stores the event with the system actor",
			message: func(t *testing.T) kafkaGo.Message { return eventMessage(t, event) },
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().InsertActivity(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, activity model.Activity) error {
					assert.Equal(t, "evt-1", activity.ID)
					assert.Equal(t, "bk-1", activity.BookingID)
					assert.Equal(t, model.EventCheckedIn, activity.Event)
					assert.Equal(t, constant.SystemUser, activity.Actor)
					assert.True(t, occurredAt.Equal(activity.OccurredAt))
					assert.Contains(t, activity.Payload, `"booking.checked_in"`)

					return nil
				})
			},
		},
		{
			name:      "skips malformed payloads",
			message:   func(*testing.T) kafkaGo.Message { return kafkaGo.Message{Value: []byte("{not json")} },
			setupMock: func(*mocks.MockBooking) {},
		},
		{
			name: "skips events without id",
			message: func(t *testing.T) kafkaGo.Message {
				return eventMessage(t, model.LifecycleEvent{BookingID: "bk-1"})
			},
			setupMock: func(*mocks.MockBooking) {},
		},
		{
			name:    "acknowledges redeliveries",
			message: func(t *testing.T) kafkaGo.Message { return eventMessage(t, event) },
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().InsertActivity(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
		},
		{
			name:    "returns storage errors",
			message: func(t *testing.T) kafkaGo.Message { return eventMessage(t, event) },
			setupMock: func(repo *mocks.MockBooking) {
				repo.EXPECT().InsertActivity(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockBooking(ctrl)
			tt.setupMock(repo)

			recorder := worker.NewActivityRecorder(repo, kafkaMocks.NewMockClient(ctrl), &config.Config{}, otelMocks.NewOtel())

			err := recorder.Handle(context.Background(), tt.message(t))
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestActivityRecorder_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "hotel"
	cfg.Kafka.Topic.BookingEvents = "hotel.booking.events"

	client.EXPECT().Consume(gomock.Any(), "hotel.activities", "hotel.booking.events", gomock.Any())

	recorder := worker.NewActivityRecorder(mocks.NewMockBooking(ctrl), client, cfg, otelMocks.NewOtel())
	recorder.Run(context.Background())
}
