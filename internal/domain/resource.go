package domain

import (
	"errors"
	"fmt"
)

// ResourceKind вид бронируемого ресурса
type ResourceKind string

const (
	KindEquipment ResourceKind = "equipment"
	KindCoach     ResourceKind = "coach"
)

var (
	// ErrInvalidResourceRef возвращается при нарушении инварианта "ровно один ресурс":
	// оба ID заданы, ни один не задан или ID не положительный
	ErrInvalidResourceRef = errors.New("domain: booking must reference exactly one of equipment or coach")

	// ErrInvalidResourceKind возвращается при неизвестном виде ресурса
	ErrInvalidResourceKind = errors.New("domain: invalid resource kind")
)

// ResourceRef ссылка на бронируемый ресурс: тренажёр ИЛИ тренер
// Поля неэкспортируемые - корректно сконструировать значение можно только
// через EquipmentRef/CoachRef/NewResourceRef, поэтому инвариант
// "ровно один ресурс" не может быть нарушен после создания
type ResourceRef struct {
	kind ResourceKind
	id   int64
}

// EquipmentRef создает ссылку на тренажёр
func EquipmentRef(id int64) ResourceRef {
	return ResourceRef{kind: KindEquipment, id: id}
}

// CoachRef создает ссылку на тренера
func CoachRef(id int64) ResourceRef {
	return ResourceRef{kind: KindCoach, id: id}
}

// NewResourceRef строит ссылку из пары nullable ID (граница DTO/БД)
// Ровно один из equipmentID/coachID должен быть задан и положителен
func NewResourceRef(equipmentID, coachID *int64) (ResourceRef, error) {
	switch {
	case equipmentID != nil && coachID != nil:
		return ResourceRef{}, fmt.Errorf("%w: both equipmentId and coachId are set", ErrInvalidResourceRef)
	case equipmentID == nil && coachID == nil:
		return ResourceRef{}, fmt.Errorf("%w: neither equipmentId nor coachId is set", ErrInvalidResourceRef)
	case equipmentID != nil:
		if *equipmentID <= 0 {
			return ResourceRef{}, fmt.Errorf("%w: equipmentId must be positive", ErrInvalidResourceRef)
		}
		return EquipmentRef(*equipmentID), nil
	default:
		if *coachID <= 0 {
			return ResourceRef{}, fmt.Errorf("%w: coachId must be positive", ErrInvalidResourceRef)
		}
		return CoachRef(*coachID), nil
	}
}

// ParseResourceKind парсит вид ресурса из строки (path-параметры API)
func ParseResourceKind(s string) (ResourceKind, error) {
	switch ResourceKind(s) {
	case KindEquipment:
		return KindEquipment, nil
	case KindCoach:
		return KindCoach, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidResourceKind, s)
	}
}

// Kind возвращает вид ресурса
func (r ResourceRef) Kind() ResourceKind {
	return r.kind
}

// ID возвращает идентификатор ресурса
func (r ResourceRef) ID() int64 {
	return r.id
}

// IsZero возвращает true для несконструированной ссылки
func (r ResourceRef) IsZero() bool {
	return r.kind == "" || r.id == 0
}

// EquipmentID возвращает ID тренажёра или nil (для записи в nullable колонку)
func (r ResourceRef) EquipmentID() *int64 {
	if r.kind != KindEquipment {
		return nil
	}
	id := r.id
	return &id
}

// CoachID возвращает ID тренера или nil (для записи в nullable колонку)
func (r ResourceRef) CoachID() *int64 {
	if r.kind != KindCoach {
		return nil
	}
	id := r.id
	return &id
}

// String возвращает представление вида "equipment:5"
func (r ResourceRef) String() string {
	return fmt.Sprintf("%s:%d", r.kind, r.id)
}
