package api

import (
	"context"

	"inclusive_jobs/internal/domain/company"
)

// CompanyService работает с /companies.
type CompanyService struct {
	resource[company.Company]
}

type CompanyFilter struct {
	Name   string
	Sector string
}

func (s *CompanyService) List(ctx context.Context, page PageRequest, filter CompanyFilter) (*Page[company.Company], error) {
	query := page.params().
		with("name", filter.Name).
		with("sector", filter.Sector)
	return s.list(ctx, s.path, query)
}
