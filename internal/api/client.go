package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inclusive_jobs/internal/domain/candidacy"
	"inclusive_jobs/internal/domain/candidate"
	"inclusive_jobs/internal/domain/company"
	"inclusive_jobs/internal/domain/user"
	"inclusive_jobs/internal/domain/vacancy"
	"inclusive_jobs/internal/metrics"
	"inclusive_jobs/internal/observability"
)

// DefaultTimeout ограничивает время соединения и ответа для каждого вызова.
const DefaultTimeout = 10 * time.Second

const maxResponseBytes = 4 << 20

// TokenSource отдает bearer токен для исходящих запросов.
// Пустой токен означает запрос без авторизации.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client обращается к бэкенду вакансий. Повторов нет: каждая ошибка
// логируется один раз и возвращается вызывающему.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	metrics    *metrics.Collector

	Users       *UserService
	Candidates  *CandidateService
	Companies   *CompanyService
	Vacancies   *VacancyService
	Candidacies *CandidacyService
}

type Option func(*Client)

// WithHTTPClient заменяет транспорт. Таймаут задает вызывающий.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// NewClient создает клиент для baseURL. tokens может быть nil, тогда
// заголовок Authorization не отправляется.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Users = &UserService{resource[user.User]{client: c, path: "/users"}}
	c.Candidates = &CandidateService{resource[candidate.Candidate]{client: c, path: "/candidates"}}
	c.Companies = &CompanyService{resource[company.Company]{client: c, path: "/companies"}}
	c.Vacancies = &VacancyService{resource[vacancy.Vacancy]{client: c, path: "/vacancies"}}
	c.Candidacies = &CandidacyService{resource[candidacy.Candidacy]{client: c, path: "/candidacies"}}
	return c
}

// BaseURL возвращает нормализованный адрес бэкенда.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	requestID := observability.NewRequestID()
	ctx = observability.WithRequestID(ctx, requestID)

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return c.fail(ctx, method, path, fmt.Errorf("encode %s %s: %w", method, path, err))
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return c.fail(ctx, method, path, fmt.Errorf("create %s %s: %w", method, path, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	c.authorize(ctx, req)

	c.metrics.IncRequests()
	c.logger.DebugContext(ctx, "api request", slog.String("method", method), slog.String("path", path))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncNoResponse()
		c.logger.ErrorContext(ctx, "api no response",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return &NoResponseError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return c.fail(ctx, method, path, fmt.Errorf("read %s %s response: %w", method, path, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.IncFailures()
		c.logger.ErrorContext(ctx, "api error response",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(payload)}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return c.fail(ctx, method, path, fmt.Errorf("decode %s %s response: %w", method, path, err))
	}
	return nil
}

// authorize добавляет bearer токен. Ошибка чтения токена логируется,
// и запрос уходит без авторизации.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "token lookup failed", slog.String("error", err.Error()))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) fail(ctx context.Context, method, path string, err error) error {
	c.logger.ErrorContext(ctx, "api call failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
	return err
}
