package domain

// Значения по умолчанию для календаря слотов
// Рабочее окно зала фиксированное, настраивается через config.toml
const (
	DefaultOpenHour            = 6  // 06:00
	DefaultCloseHour           = 22 // 22:00
	DefaultSlotDurationMinutes = 60
	DefaultCacheTTLMinutes     = 5
	DefaultSlotRetentionDays   = 1 // слоты старше одного дня удаляются
)

// Бизнес-ограничения
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	DefaultCoachSessionTokens   = 30 // стоимость сессии, если у тренера не задана ставка
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, удерживающие временной диапазон
// Используются при проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses терминальные статусы бронирования
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
