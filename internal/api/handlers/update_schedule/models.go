package update_schedule

import (
	"time"

	"github.com/promeet/booking-service/internal/domain"
	scheduleSvc "github.com/promeet/booking-service/internal/service/schedule"
	"github.com/promeet/booking-service/pkg/types"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Rules []WeeklyRuleRequest `json:"rules"`
}

// WeeklyRuleRequest еженедельное правило в запросе
type WeeklyRuleRequest struct {
	DayOfWeek   int    `json:"dayOfWeek"` // 0=воскресенье ... 6=суббота
	IsAvailable bool   `json:"isAvailable"`
	StartTime   string `json:"startTime,omitempty"` // "09:00"
	EndTime     string `json:"endTime,omitempty"`   // "17:00"
}

// ScheduleRuleResponse HTTP модель сохраненного правила
type ScheduleRuleResponse struct {
	ID             int64   `json:"id"`
	ProfessionalID int64   `json:"professionalId"`
	DayOfWeek      *int    `json:"dayOfWeek,omitempty"`
	Date           *string `json:"date,omitempty"`
	IsAvailable    bool    `json:"isAvailable"`
	StartTime      string  `json:"startTime,omitempty"`
	EndTime        string  `json:"endTime,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// UpdateScheduleResponse HTTP response model
type UpdateScheduleResponse struct {
	Rules []*ScheduleRuleResponse `json:"rules"`
}

// ToServiceRules конвертирует HTTP запрос в модели сервиса
func (r *UpdateScheduleRequest) ToServiceRules() ([]scheduleSvc.WeeklyRule, error) {
	rules := make([]scheduleSvc.WeeklyRule, 0, len(r.Rules))
	for _, raw := range r.Rules {
		rule := scheduleSvc.WeeklyRule{
			DayOfWeek:   raw.DayOfWeek,
			IsAvailable: raw.IsAvailable,
		}

		if raw.StartTime != "" {
			start, err := types.NewTimeStringFromString(raw.StartTime)
			if err != nil {
				return nil, err
			}
			rule.StartTime = start
		}
		if raw.EndTime != "" {
			end, err := types.NewTimeStringFromString(raw.EndTime)
			if err != nil {
				return nil, err
			}
			rule.EndTime = end
		}

		rules = append(rules, rule)
	}
	return rules, nil
}

// FromDomainRule конвертирует доменную модель правила в HTTP модель
func FromDomainRule(rule *domain.ScheduleRule) *ScheduleRuleResponse {
	resp := &ScheduleRuleResponse{
		ID:             rule.ID,
		ProfessionalID: rule.ProfessionalID,
		DayOfWeek:      rule.DayOfWeek,
		IsAvailable:    rule.IsAvailable,
		StartTime:      rule.StartTime.String(),
		EndTime:        rule.EndTime.String(),
		CreatedAt:      rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      rule.UpdatedAt.Format(time.RFC3339),
	}
	if rule.Date != nil {
		date := rule.Date.Format(domain.DateFormat)
		resp.Date = &date
	}
	return resp
}

// FromDomainRules конвертирует список доменных моделей
func FromDomainRules(rules []*domain.ScheduleRule) []*ScheduleRuleResponse {
	result := make([]*ScheduleRuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, FromDomainRule(rule))
	}
	return result
}
