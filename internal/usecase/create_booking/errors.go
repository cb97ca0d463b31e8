package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserInactive возвращается для деактивированного пользователя
	ErrUserInactive = errors.New("create_booking: user is not active")

	// ErrResourceNotFound возвращается, когда тренажёр или тренер не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceUnavailable возвращается для неактивного ресурса
	ErrResourceUnavailable = errors.New("create_booking: resource is not available for booking")

	// ErrTimeConflict возвращается, когда запрошенный диапазон пересекается
	// с активным бронированием ресурса
	ErrTimeConflict = errors.New("create_booking: time range conflicts with an existing booking")

	// ErrCoachSessionConflict возвращается при попытке члена зала самостоятельно
	// забронировать тренажёр на время своей тренерской сессии
	ErrCoachSessionConflict = errors.New("create_booking: equipment cannot be booked during a coach session")

	// ErrInsufficientTokens возвращается при недостатке токенов для оплаты
	ErrInsufficientTokens = errors.New("create_booking: insufficient tokens")

	// ErrBookingInPast возвращается, когда начало бронирования в прошлом
	ErrBookingInPast = errors.New("create_booking: booking starts in the past")

	// ErrOutsideWorkingHours возвращается за пределами рабочего окна зала
	ErrOutsideWorkingHours = errors.New("create_booking: time range is outside working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
