package api

import (
	"context"

	"inclusive_jobs/internal/domain/vacancy"
)

// VacancyService работает с /vacancies.
type VacancyService struct {
	resource[vacancy.Vacancy]
}

type VacancyFilter struct {
	Title       string
	City        string
	VacancyType vacancy.Type
}

func (s *VacancyService) List(ctx context.Context, page PageRequest, filter VacancyFilter) (*Page[vacancy.Vacancy], error) {
	query := page.params().
		with("title", filter.Title).
		with("city", filter.City).
		with("vacancyType", string(filter.VacancyType))
	return s.list(ctx, s.path, query)
}
