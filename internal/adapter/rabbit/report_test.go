package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/internal/domain/types"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
)

type fakeAck struct {
	mu      sync.Mutex
	acked   bool
	requeue bool
	dropped bool
}

func (f *fakeAck) Ack(uint64, bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if requeue {
		f.requeue = true
	} else {
		f.dropped = true
	}
	return nil
}

func (f *fakeAck) Reject(_ uint64, requeue bool) error {
	return f.Nack(0, false, requeue)
}

func delivery(t *testing.T, ack amqp.Acknowledger, body any) amqp.Delivery {
	t.Helper()

	var data []byte
	switch b := body.(type) {
	case []byte:
		data = b
	default:
		var err error
		if data, err = json.Marshal(b); err != nil {
			t.Fatal(err)
		}
	}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: data, CorrelationId: "req-1"}
}

func TestReportConsumer_HandleMessage(t *testing.T) {
	msg := models.ReportGeneratedMessage{ReportID: uuid.New(), InputHash: "abc"}

	tests := []struct {
		name        string
		body        any
		handlerErr  error
		wantAck     bool
		wantRequeue bool
		wantDropped bool
	}{
		{name: "archived", body: msg, wantAck: true},
		{name: "bad payload", body: []byte("{oops"), wantDropped: true},
		{name: "database failure", body: msg, handlerErr: fmt.Errorf("save: %w", types.ErrDatabaseFailed), wantRequeue: true},
		{name: "permanent failure", body: msg, handlerErr: errors.New("invalid report"), wantDropped: true},
	}

	c := NewReportConsumer(nil, "test", logger.NewWithWriter(io.Discard, "test", logger.LevelError))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &fakeAck{}
			var got models.ReportGeneratedMessage

			c.handleMessage(context.Background(), func(_ context.Context, m models.ReportGeneratedMessage) error {
				got = m
				return tt.handlerErr
			}, delivery(t, ack, tt.body))

			if ack.acked != tt.wantAck || ack.requeue != tt.wantRequeue || ack.dropped != tt.wantDropped {
				t.Fatalf("ack=%v requeue=%v dropped=%v", ack.acked, ack.requeue, ack.dropped)
			}
			if tt.wantAck && got.ReportID != msg.ReportID {
				t.Fatalf("handler got report %s", got.ReportID)
			}
		})
	}
}

func TestRetry(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("got %v after %d calls", err, calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = retry(ctx, 3, time.Hour, func() error { return errors.New("down") })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
