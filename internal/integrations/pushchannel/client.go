package pushchannel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент realtime-шлюза push-уведомлений
// Шлюз держит websocket-каналы пользователей; мы только постим сообщения
// в канал получателя, доставка не гарантируется.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента push-шлюза
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// pushRequest тело запроса к шлюзу
type pushRequest struct {
	DedupKey string `json:"dedupKey"`
	UserID   int64  `json:"userId"`
	Message  string `json:"message"`
}

// Push отправляет сообщение в канал пользователя
// dedupKey — идентификатор уведомления; шлюз может отбросить дубликат по нему.
func (c *Client) Push(ctx context.Context, dedupKey uuid.UUID, userID int64, message string) error {
	url := fmt.Sprintf("%s/internal/channels/%d/messages", c.baseURL, userID)

	body, err := json.Marshal(pushRequest{
		DedupKey: dedupKey.String(),
		UserID:   userID,
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		// У пользователя нет открытого канала — это не ошибка доставки
		c.log.Info("Push: user %d has no open channel, message dropped", userID)
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
