package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// TaskTypeSend тип задачи asynq для доставки уведомления
const TaskTypeSend = "notification:send"

const maxRetry = 5

// enqueuer часть asynq.Client, используемая нотификатором
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqNotifier ставит задачу доставки уведомления в очередь asynq (Redis)
type AsynqNotifier struct {
	client  enqueuer
	queue   string
	timeout time.Duration
	log     Logger
}

// NewAsynqNotifier создает нотификатор поверх asynq.Client
func NewAsynqNotifier(redisAddr, redisPassword string, redisDB int, queue string, timeout time.Duration, log Logger) *AsynqNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})
	return newAsynqNotifier(client, queue, timeout, log)
}

func newAsynqNotifier(client enqueuer, queue string, timeout time.Duration, log Logger) *AsynqNotifier {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &AsynqNotifier{client: client, queue: queue, timeout: timeout, log: log}
}

// Notify ставит уведомление в очередь
func (n *AsynqNotifier) Notify(ctx context.Context, notification Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	task := asynq.NewTask(TaskTypeSend, payload)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue(n.queue),
		asynq.MaxRetry(maxRetry),
		asynq.TaskID(notification.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("%w: asynq: %v", ErrPublish, err)
	}

	n.log.Debug("Notification %s enqueued: task=%s, queue=%s", notification.ID, info.ID, info.Queue)
	return nil
}

// Close закрывает клиент asynq
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
