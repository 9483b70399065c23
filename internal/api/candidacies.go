package api

import (
	"context"
	"net/http"
	"strconv"

	"inclusive_jobs/internal/domain/candidacy"
)

// CandidacyService работает с /candidacies.
type CandidacyService struct {
	resource[candidacy.Candidacy]
}

type statusRequest struct {
	Status candidacy.Status `json:"status"`
}

// Create заполняет значения по умолчанию перед отправкой отклика.
func (s *CandidacyService) Create(ctx context.Context, c candidacy.Candidacy) (*candidacy.Candidacy, error) {
	return s.resource.Create(ctx, c.WithDefaults())
}

func (s *CandidacyService) List(ctx context.Context, page PageRequest) (*Page[candidacy.Candidacy], error) {
	return s.list(ctx, s.path, page.params())
}

// ListByCandidate возвращает отклики одного кандидата.
func (s *CandidacyService) ListByCandidate(ctx context.Context, candidateID int64, page PageRequest) (*Page[candidacy.Candidacy], error) {
	return s.list(ctx, s.path+"/candidates/"+strconv.FormatInt(candidateID, 10), page.params())
}

// ListByVacancy возвращает отклики на одну вакансию.
func (s *CandidacyService) ListByVacancy(ctx context.Context, vacancyID int64, page PageRequest) (*Page[candidacy.Candidacy], error) {
	return s.list(ctx, s.path+"/vacancy/"+strconv.FormatInt(vacancyID, 10), page.params())
}

// UpdateStatus меняет статус отклика через PATCH, отдельно от полного Update.
func (s *CandidacyService) UpdateStatus(ctx context.Context, id int64, status candidacy.Status) (*candidacy.Candidacy, error) {
	var out candidacy.Candidacy
	if err := s.client.do(ctx, http.MethodPatch, s.itemPath(id)+"/status", nil, statusRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
