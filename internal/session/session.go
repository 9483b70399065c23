package session

import (
	"context"
	"errors"

	"inclusive_jobs/internal/domain/user"
)

// Сохраняемые ключи. Значения это строки, версии схемы нет.
const (
	KeyToken       = "token"
	KeyUserID      = "userId"
	KeyUserRole    = "userRole"
	KeyUserEmail   = "userEmail"
	KeyUserName    = "userName"
	KeyCandidateID = "candidateId"
	KeyCompanyID   = "companyId"
)

// Keys перечисляет все ключи сессии.
var Keys = []string{
	KeyToken,
	KeyUserID,
	KeyUserRole,
	KeyUserEmail,
	KeyUserName,
	KeyCandidateID,
	KeyCompanyID,
}

// Session локально сохраненные данные текущего пользователя.
// Пустое поле означает отсутствие значения.
type Session struct {
	Token       string    `json:"token,omitempty"`
	UserID      string    `json:"userId,omitempty"`
	UserRole    user.Role `json:"userRole,omitempty"`
	Email       string    `json:"email,omitempty"`
	Name        string    `json:"name,omitempty"`
	CandidateID string    `json:"candidateId,omitempty"`
	CompanyID   string    `json:"companyId,omitempty"`
}

// Authenticated сообщает, есть ли токен.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Empty сообщает, что все поля отсутствуют.
func (s Session) Empty() bool {
	return s == Session{}
}

func (s Session) items() map[string]string {
	items := make(map[string]string, len(Keys))
	put := func(key, value string) {
		if value != "" {
			items[key] = value
		}
	}
	put(KeyToken, s.Token)
	put(KeyUserID, s.UserID)
	put(KeyUserRole, string(s.UserRole))
	put(KeyUserEmail, s.Email)
	put(KeyUserName, s.Name)
	put(KeyCandidateID, s.CandidateID)
	put(KeyCompanyID, s.CompanyID)
	return items
}

func fromItems(items map[string]string) Session {
	return Session{
		Token:       items[KeyToken],
		UserID:      items[KeyUserID],
		UserRole:    user.Role(items[KeyUserRole]),
		Email:       items[KeyUserEmail],
		Name:        items[KeyUserName],
		CandidateID: items[KeyCandidateID],
		CompanyID:   items[KeyCompanyID],
	}
}

// Store локальное хранилище строковых ключей и значений.
//
// MultiGet пропускает отсутствующие ключи. MultiSet и MultiRemove применяют
// все элементы или ни одного.
type Store interface {
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)
	MultiSet(ctx context.Context, items map[string]string) error
	MultiRemove(ctx context.Context, keys []string) error
}

var (
	// ErrNotAuthenticated сообщает об отсутствии токена.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNoCandidateProfile сообщает, что id кандидата в сессии нет.
	ErrNoCandidateProfile = errors.New("candidate profile not resolved")
	// ErrNoCompanyProfile сообщает, что id компании в сессии нет.
	ErrNoCompanyProfile = errors.New("company profile not resolved")
)
