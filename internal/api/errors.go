package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// APIError описывает ответ бэкенда со статусом не 2xx.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("api error: %s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("api error: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Message возвращает поле "message" (или "error") из JSON тела,
// иначе тело без пробелов по краям.
func (e *APIError) Message() string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(e.Body)
}

// NoResponseError сообщает, что запрос отправлен, но ответ не получен.
type NoResponseError struct {
	Method string
	Path   string
	Err    error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("no response from api: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NoResponseError) Unwrap() error {
	return e.Err
}

// IsTimeout сообщает, является ли err таймаутом транспорта или контекста.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// StatusCode возвращает HTTP статус APIError или 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
