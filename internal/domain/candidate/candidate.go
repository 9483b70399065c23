package candidate

type DisabilityType string

const (
	DisabilityPhysical    DisabilityType = "PHYSICAL"
	DisabilityVisual      DisabilityType = "VISUAL"
	DisabilityAuditory    DisabilityType = "AUDITORY"
	DisabilityCognitive   DisabilityType = "COGNITIVE"
	DisabilityNotInformed DisabilityType = "NOT_INFORMED"
)

var DisabilityTypes = []DisabilityType{
	DisabilityPhysical,
	DisabilityVisual,
	DisabilityAuditory,
	DisabilityCognitive,
	DisabilityNotInformed,
}

func (d DisabilityType) Valid() bool {
	for _, known := range DisabilityTypes {
		if d == known {
			return true
		}
	}
	return false
}

// Candidate профиль соискателя, один на пользователя.
type Candidate struct {
	ID             int64          `json:"id,omitempty"`
	UserID         int64          `json:"userId"`
	DisabilityType DisabilityType `json:"disabilityType"`
	Skills         string         `json:"skills,omitempty"`
	Experience     string         `json:"experience,omitempty"`
	// Бэкенд пишет это поле с одной "c".
	RequiredAccessibility string `json:"requiredAcessibility,omitempty"`
}

// WithDefaults заполняет необязательные поля, которые ждет бэкенд.
func (c Candidate) WithDefaults() Candidate {
	if c.DisabilityType == "" {
		c.DisabilityType = DisabilityNotInformed
	}
	return c
}
