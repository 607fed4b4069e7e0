package get_available_slots

import (
	"time"

	"github.com/promeet/booking-service/internal/domain"
	"github.com/promeet/booking-service/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	ProfessionalID int64     // ID специалиста
	Date           time.Time // Дата (без времени)
}

// Response модель ответа со свободными слотами
type Response struct {
	ProfessionalID int64               // ID специалиста
	Date           time.Time           // Запрошенная дата
	DayOff         bool                // День закрыт расписанием
	Source         domain.WindowSource // Откуда взято окно: override/weekly/default
	Slots          []types.TimeString  // Времена начала свободных часовых слотов
}
