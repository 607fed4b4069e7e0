package pushchannel

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pushchannel client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("pushchannel client: invalid response")

	// ErrUnavailable возвращается, когда шлюз недоступен
	// Доставка push-уведомлений — best effort, вызывающий код это проглатывает.
	ErrUnavailable = errors.New("pushchannel client: gateway unavailable")
)
