package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter часть kafka.Writer, используемая нотификатором
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// batchTimeout задержка накопления батча kafka.Writer.
// По умолчанию kafka-go ждет 1s, что для одиночных уведомлений лишнее.
const batchTimeout = 10 * time.Millisecond

// KafkaNotifier публикует уведомления в топик Kafka.
// Ключ сообщения - получатель, чтобы уведомления одного пользователя шли в одну партицию.
type KafkaNotifier struct {
	writer  messageWriter
	timeout time.Duration
	log     Logger
}

// NewKafkaNotifier создает нотификатор поверх kafka.Writer.
// timeout ограничивает одну публикацию, недоступный брокер не держит запрос дольше него.
func NewKafkaNotifier(brokers []string, topic string, timeout time.Duration, log Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           batchTimeout,
		WriteTimeout:           timeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newKafkaNotifier(writer, timeout, log)
}

func newKafkaNotifier(writer messageWriter, timeout time.Duration, log Logger) *KafkaNotifier {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &KafkaNotifier{writer: writer, timeout: timeout, log: log}
}

// Notify публикует уведомление
func (n *KafkaNotifier) Notify(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(notification.RecipientID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(notification.Event)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka: %v", ErrPublish, err)
	}

	n.log.Debug("Notification %s published to kafka: event=%s, recipient=%d", notification.ID, notification.Event, notification.RecipientID)
	return nil
}

// Close закрывает writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
