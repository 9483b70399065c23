package session

import (
	"context"
	"fmt"
	"log/slog"
)

// Manager читает и пишет сессию через Store.
type Manager struct {
	store  Store
	logger *slog.Logger
}

func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// Token возвращает сохраненный bearer токен или "", если его нет.
func (m *Manager) Token(ctx context.Context) (string, error) {
	items, err := m.store.MultiGet(ctx, []string{KeyToken})
	if err != nil {
		m.logger.ErrorContext(ctx, "session token read failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("read session token: %w", err)
	}
	return items[KeyToken], nil
}

// Set сохраняет все непустые поля s. Отсутствующие поля не трогает.
func (m *Manager) Set(ctx context.Context, s Session) error {
	items := s.items()
	if len(items) == 0 {
		return nil
	}
	if err := m.store.MultiSet(ctx, items); err != nil {
		m.logger.ErrorContext(ctx, "session write failed", slog.String("error", err.Error()))
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Current возвращает сохраненную сессию. Отсутствующие ключи дают пустые поля.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	items, err := m.store.MultiGet(ctx, Keys)
	if err != nil {
		m.logger.ErrorContext(ctx, "session read failed", slog.String("error", err.Error()))
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return fromItems(items), nil
}

// Clear удаляет все ключи сессии одним вызовом хранилища.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.MultiRemove(ctx, Keys); err != nil {
		m.logger.ErrorContext(ctx, "session clear failed", slog.String("error", err.Error()))
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
