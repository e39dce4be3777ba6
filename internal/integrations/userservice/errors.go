package userservice

import "errors"

var (
	// ErrClientNotFound возвращается, когда пользователь не найден
	ErrClientNotFound = errors.New("userservice: client not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается, когда UserService недоступен
	ErrServiceDegraded = errors.New("userservice unavailable")
)
