package notifier

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации уведомления
	ErrEncode = errors.New("notifier: failed to encode notification")

	// ErrPublish возвращается, когда брокер не принял уведомление
	ErrPublish = errors.New("notifier: failed to publish notification")

	// ErrUnknownDriver возвращается при неизвестном драйвере уведомлений
	ErrUnknownDriver = errors.New("notifier: unknown driver")
)
