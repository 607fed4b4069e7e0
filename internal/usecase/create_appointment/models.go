package create_appointment

import (
	"time"

	"github.com/promeet/booking-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID       int64            // ID пользователя-клиента
	ProfessionalID int64            // ID специалиста
	ServiceID      *int64           // ID услуги (опционально, влияет на цену)
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала слота (например, "10:00")
	Reason         *string          // Причина визита (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64            // ID созданной записи
	ClientID       int64            // ID клиента
	ProfessionalID int64            // ID специалиста
	ServiceID      *int64           // ID услуги
	ServiceName    *string          // Название услуги (снапшот)
	Price          float64          // Зафиксированная цена
	Date           time.Time        // Дата записи
	StartTime      types.TimeString // Время начала
	EndTime        types.TimeString // Время окончания
	Status         string           // Статус записи
	Reason         *string          // Причина визита

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
