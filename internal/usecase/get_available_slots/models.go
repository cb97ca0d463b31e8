package get_available_slots

import (
	"time"

	"github.com/intellifit/GymBookingService/pkg/types"
)

// Request модель запроса на получение доступности ресурса
type Request struct {
	ResourceKind string    // equipment | coach
	ResourceID   int64     // ID ресурса
	Date         time.Time // дата (без времени)
}

// Response модель ответа со слотами ресурса на дату
type Response struct {
	ResourceKind string    // вид ресурса
	ResourceID   int64     // ID ресурса
	Date         time.Time // дата, на которую запрашивались слоты
	Slots        []Slot    // часовые слоты рабочего окна
	FromCache    bool      // снимок отдан из кэша
}

// Slot модель часового слота
type Slot struct {
	StartTime      types.TimeString // начало слота, например "09:00"
	EndTime        types.TimeString // конец слота, например "10:00"
	IsBooked       bool             // слот занят
	IsCoachSession bool             // занят тренерской сессией
}
