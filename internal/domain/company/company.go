package company

// Company профиль работодателя, один на пользователя.
type Company struct {
	ID          int64  `json:"id,omitempty"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Sector      string `json:"sector,omitempty"`
	City        string `json:"city,omitempty"`
	Description string `json:"description,omitempty"`
}
