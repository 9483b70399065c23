// Package forms проверяет ввод пользователя до отправки на бэкенд.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"inclusive_jobs/internal/domain/candidate"
	"inclusive_jobs/internal/domain/company"
	"inclusive_jobs/internal/domain/user"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("disability", func(fl validator.FieldLevel) bool {
		return candidate.DisabilityType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return user.Role(fl.Field().String()).Valid()
	})
	return v
}

// FieldError одно отклоненное поле.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError перечисляет все отклоненные поля формы.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Has сообщает, было ли поле отклонено.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

type LoginForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func (f LoginForm) Validate() error {
	return check(f)
}

// SignupForm создает аккаунт, профиль заполняется позже.
type SignupForm struct {
	Name         string    `validate:"required"`
	Email        string    `validate:"required,email"`
	Password     string    `validate:"required,min=6"`
	Confirmation string    `validate:"required,eqfield=Password"`
	Role         user.Role `validate:"required,role"`
	City         string
	State        string
	Phone        string
}

func (f SignupForm) Validate() error {
	return check(f)
}

func (f SignupForm) User() user.User {
	return user.User{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		UserRole: f.Role,
		City:     strings.TrimSpace(f.City),
		State:    strings.TrimSpace(f.State),
		Phone:    strings.TrimSpace(f.Phone),
	}
}

// ProfileForm редактирует поля аккаунта на экране профиля.
type ProfileForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required"`
	City  string `validate:"required"`
	State string
}

func (f ProfileForm) Validate() error {
	return check(f)
}

// Apply переносит измененные поля в u, сохраняя id, роль и пароль.
func (f ProfileForm) Apply(u user.User) user.User {
	u.Name = strings.TrimSpace(f.Name)
	u.Email = strings.TrimSpace(f.Email)
	u.Phone = strings.TrimSpace(f.Phone)
	u.City = strings.TrimSpace(f.City)
	if state := strings.TrimSpace(f.State); state != "" {
		u.State = state
	}
	return u
}

type CandidateProfileForm struct {
	DisabilityType        string `validate:"omitempty,disability"`
	Skills                string
	Experience            string
	RequiredAccessibility string
}

func (f CandidateProfileForm) Validate() error {
	return check(f)
}

func (f CandidateProfileForm) Candidate(userID int64) candidate.Candidate {
	return candidate.Candidate{
		UserID:                userID,
		DisabilityType:        candidate.DisabilityType(f.DisabilityType),
		Skills:                strings.Join(SplitSkills(f.Skills), ", "),
		Experience:            strings.TrimSpace(f.Experience),
		RequiredAccessibility: strings.TrimSpace(f.RequiredAccessibility),
	}.WithDefaults()
}

type CompanyProfileForm struct {
	Name        string `validate:"required"`
	Sector      string `validate:"required"`
	City        string
	Description string
}

func (f CompanyProfileForm) Validate() error {
	return check(f)
}

func (f CompanyProfileForm) Company(userID int64) company.Company {
	return company.Company{
		UserID:      userID,
		Name:        strings.TrimSpace(f.Name),
		Sector:      strings.TrimSpace(f.Sector),
		City:        strings.TrimSpace(f.City),
		Description: strings.TrimSpace(f.Description),
	}
}

// SplitSkills разбивает список через запятую, обрезает пробелы и убирает пустые.
func SplitSkills(raw string) []string {
	var skills []string
	for _, part := range strings.Split(raw, ",") {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return fmt.Errorf("validate form: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(invalid))}
	for _, fe := range invalid {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must have at least %s characters", fe.Param())
	case "eqfield":
		return "does not match " + fe.Param()
	case "disability":
		return fmt.Sprintf("must be one of %v", candidate.DisabilityTypes)
	case "role":
		return fmt.Sprintf("must be %s or %s", user.RoleCandidate, user.RoleCompany)
	default:
		return "is invalid"
	}
}
