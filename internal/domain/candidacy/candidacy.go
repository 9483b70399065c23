package candidacy

type Status string

const (
	StatusUnderAnalysis Status = "UNDER_ANALYSIS"
	StatusApproved      Status = "APPROVED"
	StatusRejected      Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnderAnalysis, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Candidacy связывает кандидата с вакансией. AppliedAt хранится как его
// присылает бэкенд (локальное время без зоны).
type Candidacy struct {
	ID          int64  `json:"id,omitempty"`
	CandidateID int64  `json:"candidateId"`
	VacancyID   int64  `json:"vacancyId"`
	Status      Status `json:"status,omitempty"`
	AppliedAt   string `json:"appliedAt,omitempty"`
}

func (c Candidacy) WithDefaults() Candidacy {
	if c.Status == "" {
		c.Status = StatusUnderAnalysis
	}
	return c
}
