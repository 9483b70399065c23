package forms

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"inclusive_jobs/internal/domain/candidate"
	"inclusive_jobs/internal/domain/user"
)

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr
}

func TestLoginFormRequiresBothFields(t *testing.T) {
	verr := validationError(t, LoginForm{}.Validate())
	if !verr.Has("Email") || !verr.Has("Password") {
		t.Fatalf("expected both fields rejected, got %+v", verr.Fields)
	}
	if err := (LoginForm{Email: "a@x.com", Password: "p"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSignupForm(t *testing.T) {
	valid := SignupForm{
		Name:         "Ana",
		Email:        "ana@x.com",
		Password:     "secret1",
		Confirmation: "secret1",
		Role:         user.RoleCandidate,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*SignupForm)
		field  string
	}{
		{"missing name", func(f *SignupForm) { f.Name = "" }, "Name"},
		{"bad email", func(f *SignupForm) { f.Email = "ana" }, "Email"},
		{"short password", func(f *SignupForm) { f.Password, f.Confirmation = "12345", "12345" }, "Password"},
		{"mismatch", func(f *SignupForm) { f.Confirmation = "secret2" }, "Confirmation"},
		{"unknown role", func(f *SignupForm) { f.Role = "ADMIN" }, "Role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := valid
			tc.mutate(&form)
			verr := validationError(t, form.Validate())
			if !verr.Has(tc.field) {
				t.Fatalf("expected %s rejected, got %+v", tc.field, verr.Fields)
			}
		})
	}

	u := SignupForm{Name: " Ana ", Email: "ana@x.com ", Password: "secret1", Role: user.RoleCompany}.User()
	if u.Name != "Ana" || u.Email != "ana@x.com" || u.UserRole != user.RoleCompany {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestValidationErrorText(t *testing.T) {
	err := SignupForm{Name: "Ana", Email: "ana@x.com", Password: "123", Confirmation: "123", Role: user.RoleCandidate}.Validate()
	if err == nil || !strings.Contains(err.Error(), "Password: must have at least 6 characters") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestProfileFormApply(t *testing.T) {
	if verr := validationError(t, ProfileForm{Name: "Ana"}.Validate()); !verr.Has("Phone") || !verr.Has("City") {
		t.Fatalf("expected phone and city required, got %+v", verr.Fields)
	}
	original := user.User{ID: 3, Name: "Old", Email: "old@x.com", UserRole: user.RoleCandidate, State: "PE"}
	updated := ProfileForm{Name: "New", Email: "new@x.com", Phone: "81 9999", City: "Recife"}.Apply(original)
	if updated.ID != 3 || updated.UserRole != user.RoleCandidate || updated.State != "PE" {
		t.Fatalf("expected identity fields kept, got %+v", updated)
	}
	if updated.Name != "New" || updated.City != "Recife" {
		t.Fatalf("expected edited fields applied, got %+v", updated)
	}
}

func TestCandidateProfileForm(t *testing.T) {
	if verr := validationError(t, CandidateProfileForm{DisabilityType: "MOTOR"}.Validate()); !verr.Has("DisabilityType") {
		t.Fatalf("expected disability type rejected, got %+v", verr.Fields)
	}
	form := CandidateProfileForm{Skills: " Go, ,SQL ,"}
	if err := form.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := form.Candidate(9)
	if c.UserID != 9 || c.DisabilityType != candidate.DisabilityNotInformed || c.Skills != "Go, SQL" {
		t.Fatalf("unexpected candidate %+v", c)
	}
}

func TestCompanyProfileForm(t *testing.T) {
	if verr := validationError(t, CompanyProfileForm{Name: "Acme"}.Validate()); !verr.Has("Sector") {
		t.Fatalf("expected sector required, got %+v", verr.Fields)
	}
	c := CompanyProfileForm{Name: " Acme ", Sector: "Tech"}.Company(4)
	if c.Name != "Acme" || c.UserID != 4 {
		t.Fatalf("unexpected company %+v", c)
	}
}

func TestSplitSkills(t *testing.T) {
	if got := SplitSkills(" a, b ,,c "); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected skills %v", got)
	}
	if got := SplitSkills(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
