package vacancy

type Type string

const (
	TypeRemote     Type = "REMOTE"
	TypeHybrid     Type = "HYBRID"
	TypePresential Type = "PRESENTIAL"
)

func (t Type) Valid() bool {
	switch t {
	case TypeRemote, TypeHybrid, TypePresential:
		return true
	}
	return false
}

type Vacancy struct {
	ID                   int64   `json:"id,omitempty"`
	Title                string  `json:"title"`
	CompanyID            int64   `json:"companyId"`
	City                 string  `json:"city,omitempty"`
	VacancyType          Type    `json:"vacancyType,omitempty"`
	Salary               float64 `json:"salary,omitempty"`
	Description          string  `json:"description,omitempty"`
	Requirements         string  `json:"requirements,omitempty"`
	Benefits             string  `json:"benefits,omitempty"`
	AccessibilityOffered string  `json:"accessibilityOffered,omitempty"`
}
