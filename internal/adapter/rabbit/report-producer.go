package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/mileage-report/internal/domain/models"
	"github.com/Temutjin2k/mileage-report/pkg/logger"
	wrap "github.com/Temutjin2k/mileage-report/pkg/logger/wrapper"
	"github.com/Temutjin2k/mileage-report/pkg/metrics"
	"github.com/Temutjin2k/mileage-report/pkg/rabbit"
)

const (
	ReportExchange     = "report_topic"
	ReportArchiveQueue = "report_archive"
	ReportGeneratedKey = "report.generated.*"
)

type ReportProducer struct {
	client   *rabbit.RabbitMQ
	exchange string
	service  string

	l logger.Logger
}

func NewReportProducer(client *rabbit.RabbitMQ, service string, log logger.Logger) *ReportProducer {
	return &ReportProducer{
		client:   client,
		exchange: ReportExchange,
		service:  service,
		l:        log,
	}
}

// PublishReportGenerated публикует сгенерированный отчёт.
// отправляет в exchange 'report_topic' с ключом 'report.generated.{report_id}'.
func (p *ReportProducer) PublishReportGenerated(ctx context.Context, msg models.ReportGeneratedMessage) (err error) {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_report_generated")
	defer func() { metrics.RecordRabbitMQPublish(p.service, p.exchange, err) }()

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	key := "report.generated." + msg.ReportID.String()

	return retry(ctx, 3, time.Second, func() error {
		ch, err := p.client.Ch(ctx)
		if err != nil {
			return wrap.Error(ctx, err)
		}

		if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
			return wrap.Error(ctx, fmt.Errorf("declare exchange: %w", err))
		}

		if err := ch.PublishWithContext(
			ctx,
			p.exchange, // exchange
			key,        // routing key
			false,      // mandatory
			false,      // immediate
			amqp.Publishing{
				ContentType:   "application/json",
				DeliveryMode:  amqp.Persistent,
				CorrelationId: msg.CorrelationID, // для трассировки
				MessageId:     msg.ReportID.String(),
				Body:          body,
				Timestamp:     time.Now(),
			},
		); err != nil {
			return wrap.Error(ctx, fmt.Errorf("failed to publish with context: %w", err))
		}
		return nil
	})
}
