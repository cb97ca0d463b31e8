package slotcalendar

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден в каталоге
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidGrid возвращается при некорректных параметрах сетки слотов
	ErrInvalidGrid = errors.New("invalid slot grid parameters")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slotcalendar: internal error")
)
