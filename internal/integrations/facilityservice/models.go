package facilityservice

// ResourceStatus статус ресурса в реестре зала
type ResourceStatus string

const (
	StatusAvailable        ResourceStatus = "available"
	StatusInUse            ResourceStatus = "in_use"
	StatusUnderMaintenance ResourceStatus = "under_maintenance"
	StatusOutOfService     ResourceStatus = "out_of_service"
)

// Equipment модель тренажёра из FacilityService
type Equipment struct {
	ID                int64          `json:"id"`
	Name              string         `json:"name"`
	Category          string         `json:"category"`
	Status            ResourceStatus `json:"status"`
	IsActive          bool           `json:"is_active"`
	BookingCostTokens int            `json:"booking_cost_tokens"` // стоимость за час
}

// Bookable возвращает true, если тренажёр можно бронировать
// Тренажёр на обслуживании или выведенный из эксплуатации не бронируется
func (e *Equipment) Bookable() bool {
	return e.IsActive && e.Status == StatusAvailable
}

// Coach модель тренера из FacilityService
type Coach struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	Name       string   `json:"name"`
	HourlyRate *float64 `json:"hourly_rate"` // в токенах, nil = ставка по умолчанию
	IsActive   bool     `json:"is_active"`
}

// Bookable возвращает true, если тренера можно бронировать
func (c *Coach) Bookable() bool {
	return c.IsActive
}
