package jobsapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"inclusive_jobs/internal/api"
	"inclusive_jobs/internal/domain/candidacy"
	"inclusive_jobs/internal/domain/candidate"
	"inclusive_jobs/internal/domain/company"
	"inclusive_jobs/internal/domain/user"
	"inclusive_jobs/internal/domain/vacancy"
	"inclusive_jobs/internal/forms"
	"inclusive_jobs/internal/session"
)

type command struct {
	summary string
	run     func(ctx context.Context, a *App, args []string) error
}

var commands = map[string]command{
	"login":            {"log in and store the session", runLogin},
	"logout":           {"remove the stored session", runLogout},
	"whoami":           {"show the stored session", runWhoami},
	"signup":           {"create an account", runSignup},
	"create-profile":   {"create the candidate or company profile", runCreateProfile},
	"profile":          {"show the account and profile", runProfile},
	"update-profile":   {"edit name, email, phone and city", runUpdateProfile},
	"delete-account":   {"delete the profile and the account", runDeleteAccount},
	"vacancies":        {"list vacancies", runVacancies},
	"vacancy":          {"show one vacancy: vacancy <id>", runVacancy},
	"companies":        {"list companies", runCompanies},
	"apply":            {"apply to a vacancy: apply <vacancyId>", runApply},
	"applications":     {"list candidacies of the candidate or of a vacancy", runApplications},
	"candidacy-status": {"set a candidacy status: candidacy-status <id> <status>", runCandidacyStatus},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sessionView сессия для вывода, сам токен никогда не печатается.
type sessionView struct {
	Authenticated bool      `json:"authenticated"`
	UserID        string    `json:"userId,omitempty"`
	Role          user.Role `json:"role,omitempty"`
	Email         string    `json:"email,omitempty"`
	Name          string    `json:"name,omitempty"`
	CandidateID   string    `json:"candidateId,omitempty"`
	CompanyID     string    `json:"companyId,omitempty"`
}

func viewOf(s session.Session) sessionView {
	return sessionView{
		Authenticated: s.Authenticated(),
		UserID:        s.UserID,
		Role:          s.UserRole,
		Email:         s.Email,
		Name:          s.Name,
		CandidateID:   s.CandidateID,
		CompanyID:     s.CompanyID,
	}
}

type profileView struct {
	User      *user.User           `json:"user,omitempty"`
	Candidate *candidate.Candidate `json:"candidate,omitempty"`
	Company   *company.Company     `json:"company,omitempty"`
}

func (a *App) alert(err error) error {
	return render(a, api.Capture[any](nil, err))
}

func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// current возвращает сессию вошедшего пользователя.
func (a *App) current(ctx context.Context) (session.Session, error) {
	s, err := a.sessions.Current(ctx)
	if err != nil {
		return session.Session{}, err
	}
	if !s.Authenticated() || s.UserID == "" {
		return session.Session{}, session.ErrNotAuthenticated
	}
	return s, nil
}

func (a *App) candidateID(ctx context.Context) (int64, error) {
	s, err := a.current(ctx)
	if err != nil {
		return 0, err
	}
	if s.CandidateID == "" {
		return 0, session.ErrNoCandidateProfile
	}
	return api.ParseID(s.CandidateID)
}

func pageFlags(fs *flag.FlagSet, size int) *api.PageRequest {
	page := &api.PageRequest{}
	fs.IntVar(&page.Page, "page", 0, "page number, starting at 0")
	fs.IntVar(&page.Size, "size", size, "page size")
	return page
}

func positionalID(fs *flag.FlagSet, what string) (int64, error) {
	if fs.NArg() < 1 {
		return 0, fmt.Errorf("%w: missing %s", ErrUsage, what)
	}
	return api.ParseID(fs.Arg(0))
}

func runLogin(ctx context.Context, a *App, args []string) error {
	fs := a.flags("login")
	form := forms.LoginForm{}
	fs.StringVar(&form.Email, "email", "", "account email")
	fs.StringVar(&form.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return a.alert(err)
	}
	resp, err := a.auth.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err == nil && resp.Token == "" {
		err = errors.New("login response carried no token")
	}
	if err != nil {
		return a.alert(err)
	}
	current, err := a.auth.CurrentUser(ctx)
	return render(a, api.Capture(viewOf(current), err))
}

func runLogout(ctx context.Context, a *App, _ []string) error {
	err := a.auth.Logout(ctx)
	return render(a, api.Capture(map[string]bool{"loggedOut": err == nil}, err))
}

func runWhoami(ctx context.Context, a *App, _ []string) error {
	current, err := a.auth.CurrentUser(ctx)
	return render(a, api.Capture(viewOf(current), err))
}

func runSignup(ctx context.Context, a *App, args []string) error {
	fs := a.flags("signup")
	form := forms.SignupForm{}
	var role string
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email")
	fs.StringVar(&form.Password, "password", "", "password, at least 6 characters")
	fs.StringVar(&form.Confirmation, "confirm", "", "password confirmation")
	fs.StringVar(&role, "role", string(user.RoleCandidate), "CANDIDATE or COMPANY")
	fs.StringVar(&form.City, "city", "", "city")
	fs.StringVar(&form.State, "state", "", "state")
	fs.StringVar(&form.Phone, "phone", "", "phone")
	if err := fs.Parse(args); err != nil {
		return err
	}
	form.Role = user.Role(strings.ToUpper(strings.TrimSpace(role)))
	if err := form.Validate(); err != nil {
		return a.alert(err)
	}
	created, err := a.client.Users.Create(ctx, form.User())
	if created != nil {
		created.Password = ""
	}
	return render(a, api.Capture(created, err))
}

func runCreateProfile(ctx context.Context, a *App, args []string) error {
	s, err := a.current(ctx)
	if err != nil {
		return a.alert(err)
	}
	userID, err := api.ParseID(s.UserID)
	if err != nil {
		return a.alert(err)
	}

	fs := a.flags("create-profile")
	var candidateForm forms.CandidateProfileForm
	var companyForm forms.CompanyProfileForm
	switch s.UserRole {
	case user.RoleCandidate:
		fs.StringVar(&candidateForm.DisabilityType, "disability", "", "PHYSICAL, VISUAL, AUDITORY, COGNITIVE or NOT_INFORMED")
		fs.StringVar(&candidateForm.Skills, "skills", "", "comma separated skills")
		fs.StringVar(&candidateForm.Experience, "experience", "", "professional experience")
		fs.StringVar(&candidateForm.RequiredAccessibility, "accessibility", "", "accessibility needs")
	case user.RoleCompany:
		fs.StringVar(&companyForm.Name, "name", "", "company name")
		fs.StringVar(&companyForm.Sector, "sector", "", "business sector")
		fs.StringVar(&companyForm.City, "city", "", "city")
		fs.StringVar(&companyForm.Description, "description", "", "description")
	default:
		return a.alert(fmt.Errorf("session has unknown role %q", s.UserRole))
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if s.UserRole == user.RoleCandidate {
		candidateForm.DisabilityType = strings.ToUpper(strings.TrimSpace(candidateForm.DisabilityType))
		if err := candidateForm.Validate(); err != nil {
			return a.alert(err)
		}
		created, err := a.client.Candidates.Create(ctx, candidateForm.Candidate(userID))
		if err == nil && created.ID > 0 {
			err = a.sessions.Set(ctx, session.Session{CandidateID: strconv.FormatInt(created.ID, 10)})
		}
		return render(a, api.Capture(created, err))
	}
	if err := companyForm.Validate(); err != nil {
		return a.alert(err)
	}
	created, err := a.client.Companies.Create(ctx, companyForm.Company(userID))
	if err == nil && created.ID > 0 {
		err = a.sessions.Set(ctx, session.Session{CompanyID: strconv.FormatInt(created.ID, 10)})
	}
	return render(a, api.Capture(created, err))
}

func (a *App) loadProfile(ctx context.Context, s session.Session) (profileView, error) {
	var view profileView
	userID, err := api.ParseID(s.UserID)
	if err != nil {
		return view, err
	}
	if view.User, err = a.client.Users.Get(ctx, userID); err != nil {
		return view, err
	}
	view.User.Password = ""
	switch {
	case s.CandidateID != "":
		id, err := api.ParseID(s.CandidateID)
		if err != nil {
			return view, err
		}
		view.Candidate, err = a.client.Candidates.Get(ctx, id)
		return view, err
	case s.CompanyID != "":
		id, err := api.ParseID(s.CompanyID)
		if err != nil {
			return view, err
		}
		view.Company, err = a.client.Companies.Get(ctx, id)
		return view, err
	}
	return view, nil
}

func runProfile(ctx context.Context, a *App, _ []string) error {
	s, err := a.current(ctx)
	if err != nil {
		return a.alert(err)
	}
	view, err := a.loadProfile(ctx, s)
	return render(a, api.Capture(view, err))
}

func runUpdateProfile(ctx context.Context, a *App, args []string) error {
	s, err := a.current(ctx)
	if err != nil {
		return a.alert(err)
	}
	userID, err := api.ParseID(s.UserID)
	if err != nil {
		return a.alert(err)
	}
	existing, err := a.client.Users.Get(ctx, userID)
	if err != nil {
		return a.alert(err)
	}

	fs := a.flags("update-profile")
	form := forms.ProfileForm{}
	fs.StringVar(&form.Name, "name", existing.Name, "full name")
	fs.StringVar(&form.Email, "email", existing.Email, "email")
	fs.StringVar(&form.Phone, "phone", existing.Phone, "phone")
	fs.StringVar(&form.City, "city", existing.City, "city")
	fs.StringVar(&form.State, "state", existing.State, "state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		return a.alert(err)
	}
	updated, err := a.client.Users.Update(ctx, userID, form.Apply(*existing))
	if err == nil {
		updated.Password = ""
		err = a.sessions.Set(ctx, session.Session{Name: updated.Name, Email: updated.Email})
	}
	return render(a, api.Capture(updated, err))
}

func runDeleteAccount(ctx context.Context, a *App, args []string) error {
	fs := a.flags("delete-account")
	confirmed := fs.Bool("yes", false, "confirm the deletion")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*confirmed {
		return a.alert(fmt.Errorf("%w: deleting the account cannot be undone, pass -yes to confirm", ErrUsage))
	}
	s, err := a.current(ctx)
	if err != nil {
		return a.alert(err)
	}
	userID, err := api.ParseID(s.UserID)
	if err != nil {
		return a.alert(err)
	}
	if s.CandidateID != "" {
		id, err := api.ParseID(s.CandidateID)
		if err == nil {
			err = a.client.Candidates.Delete(ctx, id)
		}
		if err != nil {
			return a.alert(err)
		}
	}
	if s.CompanyID != "" {
		id, err := api.ParseID(s.CompanyID)
		if err == nil {
			err = a.client.Companies.Delete(ctx, id)
		}
		if err != nil {
			return a.alert(err)
		}
	}
	if err := a.client.Users.Delete(ctx, userID); err != nil {
		return a.alert(err)
	}
	err = a.auth.Logout(ctx)
	return render(a, api.Capture(map[string]bool{"deleted": true}, err))
}

func runVacancies(ctx context.Context, a *App, args []string) error {
	fs := a.flags("vacancies")
	page := pageFlags(fs, 20)
	filter := api.VacancyFilter{}
	var vacancyType string
	fs.StringVar(&filter.Title, "title", "", "title contains")
	fs.StringVar(&filter.City, "city", "", "city")
	fs.StringVar(&vacancyType, "type", "", "REMOTE, HYBRID or PRESENTIAL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if vacancyType != "" {
		filter.VacancyType = vacancy.Type(strings.ToUpper(vacancyType))
		if !filter.VacancyType.Valid() {
			return a.alert(fmt.Errorf("unknown vacancy type %q", vacancyType))
		}
	}
	return render(a, api.Capture(a.client.Vacancies.List(ctx, *page, filter)))
}

func runVacancy(ctx context.Context, a *App, args []string) error {
	fs := a.flags("vacancy")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := positionalID(fs, "vacancy id")
	if err != nil {
		return a.alert(err)
	}
	return render(a, api.Capture(a.client.Vacancies.Get(ctx, id)))
}

func runCompanies(ctx context.Context, a *App, args []string) error {
	fs := a.flags("companies")
	page := pageFlags(fs, 20)
	filter := api.CompanyFilter{}
	fs.StringVar(&filter.Name, "name", "", "company name")
	fs.StringVar(&filter.Sector, "sector", "", "business sector")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return render(a, api.Capture(a.client.Companies.List(ctx, *page, filter)))
}

func runApply(ctx context.Context, a *App, args []string) error {
	fs := a.flags("apply")
	if err := fs.Parse(args); err != nil {
		return err
	}
	vacancyID, err := positionalID(fs, "vacancy id")
	if err != nil {
		return a.alert(err)
	}
	candidateID, err := a.candidateID(ctx)
	if err != nil {
		return a.alert(err)
	}
	return render(a, api.Capture(a.client.Candidacies.Create(ctx, candidacy.Candidacy{
		CandidateID: candidateID,
		VacancyID:   vacancyID,
	})))
}

func runApplications(ctx context.Context, a *App, args []string) error {
	fs := a.flags("applications")
	page := pageFlags(fs, 20)
	vacancyID := fs.Int64("vacancy", 0, "list the candidacies of this vacancy instead")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *vacancyID > 0 {
		return render(a, api.Capture(a.client.Candidacies.ListByVacancy(ctx, *vacancyID, *page)))
	}
	candidateID, err := a.candidateID(ctx)
	if err != nil {
		return a.alert(err)
	}
	return render(a, api.Capture(a.client.Candidacies.ListByCandidate(ctx, candidateID, *page)))
}

func runCandidacyStatus(ctx context.Context, a *App, args []string) error {
	fs := a.flags("candidacy-status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := positionalID(fs, "candidacy id")
	if err != nil {
		return a.alert(err)
	}
	if fs.NArg() < 2 {
		return a.alert(fmt.Errorf("%w: missing status", ErrUsage))
	}
	status := candidacy.Status(strings.ToUpper(fs.Arg(1)))
	if !status.Valid() {
		return a.alert(fmt.Errorf("unknown candidacy status %q", fs.Arg(1)))
	}
	return render(a, api.Capture(a.client.Candidacies.UpdateStatus(ctx, id, status)))
}
