package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
// Ровно один из EquipmentID/CoachID должен быть задан
type Request struct {
	UserID      int64     // ID пользователя
	EquipmentID *int64    // ID тренажёра (XOR с CoachID)
	CoachID     *int64    // ID тренера (XOR с EquipmentID)
	BookingType string    // equipment | session
	StartTime   time.Time // начало полуинтервала [StartTime, EndTime)
	EndTime     time.Time // конец полуинтервала
	Notes       *string   // заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64     // ID созданного бронирования
	UserID      int64     // ID пользователя
	EquipmentID *int64    // ID тренажёра
	CoachID     *int64    // ID тренера
	BookingType string    // тип бронирования
	StartTime   time.Time // начало
	EndTime     time.Time // конец
	Status      string    // статус бронирования
	TokensCost  int       // списанные токены
	Notes       *string   // заметки

	CreatedAt time.Time // время создания
	UpdatedAt time.Time // время обновления
}
