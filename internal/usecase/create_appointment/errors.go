package create_appointment

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден
	ErrProfessionalNotFound = errors.New("create_appointment: professional not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому специалисту
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateUnavailable возвращается, когда день закрыт расписанием специалиста
	ErrDateUnavailable = errors.New("create_appointment: professional is not available on this date")

	// ErrInvalidTimeSlot возвращается, когда время не лежит на часовой сетке окна
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotTaken возвращается, когда слот уже занят другой активной записью
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
