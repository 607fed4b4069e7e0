package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("appointments: professional not found")

	// ErrNoSuggestionPending возвращается, когда по записи нет ожидающего предложения переноса
	ErrNoSuggestionPending = errors.New("appointments: no suggestion pending")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("appointments: invalid status transition")

	// ErrAccessDenied возвращается, когда пользователь не участник записи
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrInvalidInput возвращается при невалидных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input")

	// ErrSlotTaken возвращается, когда предложенный слот уже занят
	ErrSlotTaken = errors.New("appointments: slot already taken")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
