package user

type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleCompany   Role = "COMPANY"
)

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleCompany
}

// User запись аккаунта из /users. Пароль только отправляется.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	UserRole Role   `json:"userRole"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
