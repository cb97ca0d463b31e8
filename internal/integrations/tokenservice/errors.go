package tokenservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда счёт пользователя не найден
	ErrUserNotFound = errors.New("token account not found")

	// ErrInsufficientTokens возвращается при недостатке токенов для списания
	ErrInsufficientTokens = errors.New("insufficient tokens")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tokenservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tokenservice client: invalid response")
)
