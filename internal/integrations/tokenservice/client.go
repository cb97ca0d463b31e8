package tokenservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с TokenService (токен-леджер оплаты бронирований)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента TokenService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Debit списывает токены со счёта пользователя
// Возвращает ErrInsufficientTokens, если баланс меньше суммы списания
func (c *Client) Debit(ctx context.Context, userID int64, amount int, description string) error {
	return c.post(ctx, userID, Transaction{
		Amount:      -amount,
		Type:        TransactionDeduction,
		Description: description,
	})
}

// Refund возвращает токены на счёт пользователя (отмена бронирования)
func (c *Client) Refund(ctx context.Context, userID int64, amount int, description string) error {
	return c.post(ctx, userID, Transaction{
		Amount:      amount,
		Type:        TransactionRefund,
		Description: description,
	})
}

func (c *Client) post(ctx context.Context, userID int64, txn Transaction) error {
	url := fmt.Sprintf("%s/internal/users/%d/transactions", c.baseURL, userID)

	payload, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal transaction: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		return ErrInsufficientTokens
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
