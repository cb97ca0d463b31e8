package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/intellifit/GymBookingService/internal/domain"
)

// Темы событий жизненного цикла бронирований
const (
	SubjectBookingConfirmed = "booking.confirmed"
	SubjectBookingCancelled = "booking.cancelled"
	SubjectBookingCompleted = "booking.completed"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события жизненного цикла бронирований
type Publisher interface {
	BookingConfirmed(booking *domain.Booking)
	BookingCancelled(booking *domain.Booking)
	BookingCompleted(booking *domain.Booking)
	Close()
}

// BookingEvent полезная нагрузка события бронирования
type BookingEvent struct {
	EventID     string     `json:"event_id"`
	BookingID   int64      `json:"booking_id"`
	UserID      int64      `json:"user_id"`
	Resource    string     `json:"resource"`
	BookingType string     `json:"booking_type"`
	Status      string     `json:"status"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	TokensCost  int        `json:"tokens_cost"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	EmittedAt   time.Time  `json:"emitted_at"`
}

// NATSPublisher публикует события бронирований в NATS
// Публикация best-effort: ошибка публикации логируется,
// но не откатывает уже закоммиченную мутацию
type NATSPublisher struct {
	conn *nats.Conn
	log  Logger
}

// NewNATSPublisher подключается к NATS и создает паблишер
func NewNATSPublisher(url string, log Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("events: failed to connect to NATS at %s: %w", url, err)
	}

	return &NATSPublisher{conn: conn, log: log}, nil
}

// BookingConfirmed публикует событие подтверждённого бронирования
func (p *NATSPublisher) BookingConfirmed(booking *domain.Booking) {
	p.publish(SubjectBookingConfirmed, booking)
}

// BookingCancelled публикует событие отменённого бронирования
func (p *NATSPublisher) BookingCancelled(booking *domain.Booking) {
	p.publish(SubjectBookingCancelled, booking)
}

// BookingCompleted публикует событие завершённого бронирования
func (p *NATSPublisher) BookingCompleted(booking *domain.Booking) {
	p.publish(SubjectBookingCompleted, booking)
}

// Close закрывает соединение с NATS, дождавшись отправки буфера
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.log.Error("events: failed to drain NATS connection: %v", err)
	}
}

func (p *NATSPublisher) publish(subject string, booking *domain.Booking) {
	event := BookingEvent{
		EventID:     uuid.NewString(),
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		Resource:    booking.Resource.String(),
		BookingType: string(booking.BookingType),
		Status:      string(booking.Status),
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		TokensCost:  booking.TokensCost,
		CancelledAt: booking.CancelledAt,
		EmittedAt:   time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: failed to marshal event %s for booking %d: %v", subject, booking.ID, err)
		return
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		p.log.Error("events: failed to publish %s for booking %d: %v", subject, booking.ID, err)
		return
	}

	p.log.Info("events: published %s, booking_id=%d, event_id=%s", subject, booking.ID, event.EventID)
}

// NoopPublisher заглушка, когда NATS выключен в конфигурации
type NoopPublisher struct{}

func (NoopPublisher) BookingConfirmed(*domain.Booking) {}
func (NoopPublisher) BookingCancelled(*domain.Booking) {}
func (NoopPublisher) BookingCompleted(*domain.Booking) {}
func (NoopPublisher) Close()                           {}
