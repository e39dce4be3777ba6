package cart

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации корзины
	ErrEncode = errors.New("cart.store: failed to encode session")

	// ErrDecode возвращается при ошибке десериализации корзины
	ErrDecode = errors.New("cart.store: failed to decode session")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("cart.store: redis error")
)
