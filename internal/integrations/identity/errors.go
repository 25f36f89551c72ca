package identity

import "errors"

var (
	// ErrMissingCredentials запрос без токена или заголовка пользователя
	ErrMissingCredentials = errors.New("identity: missing credentials")

	// ErrInvalidToken токен не прошёл проверку
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrUnknownMode неизвестный режим проверки
	ErrUnknownMode = errors.New("identity: unknown auth mode")
)
