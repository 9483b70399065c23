package api

import (
	"context"

	"inclusive_jobs/internal/domain/candidate"
)

// CandidateService работает с /candidates.
type CandidateService struct {
	resource[candidate.Candidate]
}

type CandidateFilter struct {
	DisabilityType candidate.DisabilityType
	Skills         string
}

// Create заполняет значения по умолчанию перед отправкой профиля.
func (s *CandidateService) Create(ctx context.Context, c candidate.Candidate) (*candidate.Candidate, error) {
	return s.resource.Create(ctx, c.WithDefaults())
}

func (s *CandidateService) List(ctx context.Context, page PageRequest, filter CandidateFilter) (*Page[candidate.Candidate], error) {
	query := page.params().
		with("disabilityType", string(filter.DisabilityType)).
		with("skills", filter.Skills)
	return s.list(ctx, s.path, query)
}
