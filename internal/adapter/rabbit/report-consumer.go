package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/metrics"
	"github.com/Temutjin2k/mileage-report/pkg/rabbit"
)

const prefetchCount = 16

type ReportConsumer struct {
	client  *rabbit.RabbitMQ
	service string
	l       logger.Logger
	wg      sync.WaitGroup
}

func NewReportConsumer(client *rabbit.RabbitMQ, service string, l logger.Logger) *ReportConsumer {
	return &ReportConsumer{client: client, service: service, l: l}
}

type ReportHandlerFunc func(ctx context.Context, msg models.ReportGeneratedMessage) error

// declareAndBindQueue declares the report exchange and the archive queue and binds them.
func declareAndBindQueue(ctx context.Context, ch *amqp.Channel) (amqp.Queue, error) {
	const op = "ReportConsumer.declareAndBindQueue"

	if err := ch.ExchangeDeclare(ReportExchange, "topic", true, false, false, false, nil); err != nil {
		return amqp.Queue{}, wrap.Error(ctx, fmt.Errorf("%s: declare exchange failed: %w", op, err))
	}

	q, err := ch.QueueDeclare(ReportArchiveQueue, true, false, false, false, nil)
	if err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: declare queue failed: %w", op, err))
	}

	if err := ch.QueueBind(q.Name, ReportGeneratedKey, ReportExchange, false, nil); err != nil {
		return q, wrap.Error(ctx, fmt.Errorf("%s: bind queue failed: %w", op, err))
	}

	return q, nil
}

// handleMessage decodes one delivery and settles it: ack on success, reject
// on a bad payload or a permanent failure, requeue on a recoverable one.
func (c *ReportConsumer) handleMessage(ctx context.Context, fn ReportHandlerFunc, d amqp.Delivery) {
	const op = "ReportConsumer.handleMessage"

	var msg models.ReportGeneratedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		c.l.Error(ctx, "decode failed", err, "op", op)
		metrics.RecordRabbitMQConsume(c.service, ReportArchiveQueue, err)
		_ = d.Reject(false)
		return
	}

	// carry the publisher's request id and the report id into the logs
	ctx = wrap.WithReportID(wrap.WithRequestID(ctx, d.CorrelationId), msg.ReportID.String())

	err := fn(ctx, msg)
	metrics.RecordRabbitMQConsume(c.service, ReportArchiveQueue, err)
	if err != nil {
		c.l.Error(wrap.ErrorCtx(ctx, err), "handler failed", err, "op", op)

		if isRecoverableError(err) {
			_ = d.Nack(false, true)
		} else {
			_ = d.Reject(false)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		c.l.Warn(ctx, "ack failed", "error", err.Error(), "op", op)
	}
}

// ConsumeReportGenerated listens for report.generated.* events and passes them to fn.
// Every delivery is handled in its own goroutine. It returns when ctx is done
// and every in-flight delivery has been settled.
func (c *ReportConsumer) ConsumeReportGenerated(ctx context.Context, fn ReportHandlerFunc) error {
	const op = "ReportConsumer.ConsumeReportGenerated"
	ctx = wrap.WithAction(ctx, "rabbitmq_consume_report_generated")
	defer c.wg.Wait()

	for {
		if ctx.Err() != nil {
			c.l.Debug(ctx, "consume report generated stopped by context")
			return nil
		}

		ch, err := c.client.Ch(ctx)
		if err != nil {
			c.l.Error(ctx, "ensure connection failed", err, "op", op)
			pause(ctx, 2*time.Second)
			continue
		}

		q, err := declareAndBindQueue(ctx, ch)
		if err != nil {
			c.l.Error(ctx, "declare queue failed", err, "op", op)
			pause(ctx, 2*time.Second)
			continue
		}

		if err := ch.Qos(prefetchCount, 0, false); err != nil {
			c.l.Error(ctx, "qos failed", err, "op", op)
			pause(ctx, 2*time.Second)
			continue
		}

		msgs, err := ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
		if err != nil {
			c.l.Error(ctx, "consume failed", err, "op", op)
			pause(ctx, 2*time.Second)
			continue
		}

		c.l.Info(ctx, "start consuming generated reports", "queue", q.Name)

	consumeLoop:
		for {
			select {
			case <-ctx.Done():
				c.l.Info(ctx, "report consumer shutting down", "op", op)
				return nil

			case d, ok := <-msgs:
				if !ok {
					c.l.Warn(ctx, "message channel closed, reconnecting...", "op", op)
					pause(ctx, 2*time.Second)
					break consumeLoop
				}

				c.wg.Add(1)
				go func() {
					defer c.wg.Done()
					c.handleMessage(ctx, fn, d)
				}()
			}
		}
	}
}
