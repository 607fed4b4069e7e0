package schedule

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("schedule: professional not found")

	// ErrAccessDenied возвращается, когда пользователь не владеет профилем специалиста
	ErrAccessDenied = errors.New("schedule: access denied")

	// ErrInvalidInput возвращается при невалидных правилах расписания
	ErrInvalidInput = errors.New("schedule: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
