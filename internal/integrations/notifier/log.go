package notifier

import "context"

// LogNotifier пишет уведомления в лог. Используется локально и когда брокер не настроен.
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает нотификатор, пишущий в лог
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify логирует уведомление
func (n *LogNotifier) Notify(_ context.Context, notification Notification) error {
	n.log.Info("Notification %s: event=%s, recipient=%d, title=%q", notification.ID, notification.Event, notification.RecipientID, notification.Title)
	return nil
}

// Close ничего не делает
func (n *LogNotifier) Close() error {
	return nil
}
