package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"inclusive_jobs/internal/domain/candidate"
	"inclusive_jobs/internal/domain/company"
	"inclusive_jobs/internal/domain/user"
	"inclusive_jobs/internal/session"
)

const (
	scanPageSize = 100
	maxScanPages = 100
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ /auth/login. Token и Name приходят всегда, поля
// идентификации используются, если бэкенд их прислал.
type LoginResponse struct {
	Token       string    `json:"token"`
	Name        string    `json:"name,omitempty"`
	UserID      int64     `json:"userId,omitempty"`
	Role        user.Role `json:"role,omitempty"`
	CandidateID int64     `json:"candidateId,omitempty"`
	CompanyID   int64     `json:"companyId,omitempty"`

	// Raw тело ответа как есть.
	Raw json.RawMessage `json:"-"`
}

// AuthService отвечает за вход, выход и жизненный цикл сессии.
type AuthService struct {
	client   *Client
	sessions *session.Manager
	logger   *slog.Logger
}

func NewAuthService(client *Client, sessions *session.Manager) *AuthService {
	return &AuthService{client: client, sessions: sessions, logger: client.logger}
}

// Login выполняет вход и сохраняет новую сессию.
//
// Сначала сохраняются токен, email и имя. Затем по мере определения
// сохраняются id пользователя, роль и id профиля кандидата или компании.
// Ошибка на этом этапе логируется и оставляет сессию частично заполненной,
// но не ломает вход. Пользователь без профиля это нормальная ситуация.
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var raw json.RawMessage
	if err := a.client.do(ctx, http.MethodPost, "/auth/login", nil, credentials{Email: email, Password: password}, &raw); err != nil {
		return nil, err
	}
	resp := LoginResponse{Raw: raw}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, a.client.fail(ctx, http.MethodPost, "/auth/login", fmt.Errorf("decode login response: %w", err))
		}
		resp.Raw = raw
	}
	if resp.Token == "" {
		return &resp, nil
	}

	if err := a.sessions.Clear(ctx); err != nil {
		return nil, err
	}
	if err := a.sessions.Set(ctx, session.Session{Token: resp.Token, Email: email, Name: resp.Name}); err != nil {
		return nil, err
	}
	a.resolveIdentity(ctx, email, resp)
	return &resp, nil
}

// Logout удаляет все ключи сессии.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

// CurrentUser возвращает сохраненную сессию, отсутствующие ключи дают пустые поля.
func (a *AuthService) CurrentUser(ctx context.Context) (session.Session, error) {
	return a.sessions.Current(ctx)
}

func (a *AuthService) resolveIdentity(ctx context.Context, email string, resp LoginResponse) {
	userID, role, name := resp.UserID, resp.Role, resp.Name
	if userID == 0 || !role.Valid() {
		found, err := a.findUserByEmail(ctx, email)
		if err != nil {
			a.logger.WarnContext(ctx, "login user lookup failed", slog.String("error", err.Error()))
			return
		}
		if found == nil {
			a.logger.InfoContext(ctx, "login user not found", slog.String("email", email))
			return
		}
		userID, role = found.ID, found.UserRole
		if name == "" {
			name = found.Name
		}
	}
	if err := a.sessions.Set(ctx, session.Session{
		UserID:   formatID(userID),
		UserRole: role,
		Name:     name,
	}); err != nil {
		return
	}

	switch role {
	case user.RoleCandidate:
		id := resp.CandidateID
		if id == 0 {
			profile, err := a.findCandidateByUser(ctx, userID)
			if err != nil {
				a.logger.WarnContext(ctx, "login candidate lookup failed", slog.String("error", err.Error()))
				return
			}
			if profile == nil {
				a.logger.InfoContext(ctx, "candidate profile not created yet", slog.Int64("user_id", userID))
				return
			}
			id = profile.ID
		}
		_ = a.sessions.Set(ctx, session.Session{CandidateID: formatID(id)})
	case user.RoleCompany:
		id := resp.CompanyID
		if id == 0 {
			profile, err := a.findCompanyByUser(ctx, userID)
			if err != nil {
				a.logger.WarnContext(ctx, "login company lookup failed", slog.String("error", err.Error()))
				return
			}
			if profile == nil {
				a.logger.InfoContext(ctx, "company profile not created yet", slog.Int64("user_id", userID))
				return
			}
			id = profile.ID
		}
		_ = a.sessions.Set(ctx, session.Session{CompanyID: formatID(id)})
	default:
		a.logger.WarnContext(ctx, "login user has unknown role", slog.String("role", string(role)))
	}
}

func (a *AuthService) findUserByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.TrimSpace(email)
	return scanPages(ctx, func(ctx context.Context, page PageRequest) (*Page[user.User], error) {
		return a.client.Users.List(ctx, page)
	}, func(u user.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (a *AuthService) findCandidateByUser(ctx context.Context, userID int64) (*candidate.Candidate, error) {
	return scanPages(ctx, func(ctx context.Context, page PageRequest) (*Page[candidate.Candidate], error) {
		return a.client.Candidates.List(ctx, page, CandidateFilter{})
	}, func(c candidate.Candidate) bool {
		return c.UserID == userID
	})
}

func (a *AuthService) findCompanyByUser(ctx context.Context, userID int64) (*company.Company, error) {
	return scanPages(ctx, func(ctx context.Context, page PageRequest) (*Page[company.Company], error) {
		return a.client.Companies.List(ctx, page, CompanyFilter{})
	}, func(c company.Company) bool {
		return c.UserID == userID
	})
}

// ErrScanLimitReached сообщает, что список не закончился за maxScanPages страниц.
var ErrScanLimitReached = errors.New("scan limit reached")

// scanPages проходит список постранично, пока match не найдет запись или
// список не закончится. Если совпадений нет, возвращает nil без ошибки.
func scanPages[T any](ctx context.Context, list func(context.Context, PageRequest) (*Page[T], error), match func(T) bool) (*T, error) {
	for page := 0; page < maxScanPages; page++ {
		result, err := list(ctx, PageRequest{Page: page, Size: scanPageSize})
		if err != nil {
			return nil, err
		}
		for i := range result.Content {
			if match(result.Content[i]) {
				return &result.Content[i], nil
			}
		}
		// Number в ответе может отсутствовать, ориентируемся на запрошенную страницу.
		result.Number = page
		if !result.more(scanPageSize) {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w after %d pages of %d", ErrScanLimitReached, maxScanPages, scanPageSize)
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// ParseID превращает id из сессии в числовой id бэкенда.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}
