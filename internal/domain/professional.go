package domain

import "time"

// Professional профиль специалиста
// Никогда не удаляется физически, пока на него ссылаются записи.
type Professional struct {
	ID               int64
	UserID           int64 // владелец профиля; сюда маршрутизируются уведомления
	Name             string
	JobTitle         string
	ConsultationType string
	Price            float64 // базовая цена консультации
	Rating           float32
	ProfileActive    bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Service платная услуга специалиста
// Цена услуги имеет приоритет над базовой ценой специалиста.
type Service struct {
	ID             int64
	ProfessionalID int64
	Name           string
	Description    string
	Price          float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
