package api

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"sort"
	"testing"

	"inclusive_jobs/internal/domain/candidacy"
	"inclusive_jobs/internal/domain/candidate"
	"inclusive_jobs/internal/domain/company"
	"inclusive_jobs/internal/domain/user"
	"inclusive_jobs/internal/domain/vacancy"
	"inclusive_jobs/internal/session"
)

func vacancyFixture() vacancy.Vacancy {
	return vacancy.Vacancy{Title: "Backend developer", CompanyID: 4, VacancyType: vacancy.TypeRemote}
}

func queryKeys(q map[string][]string) []string {
	keys := make([]string, 0, len(q))
	for key := range q {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func TestListQueryContainsOnlyPageSizeAndGivenFilters(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		writeJSON(w, http.StatusOK, page([]any{}, true))
	})
	client := newTestClient(t, backend, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
		path string
		want map[string]string
	}{
		{
			name: "users",
			call: func() error { _, err := client.Users.List(ctx, PageRequest{Page: 2, Size: 5}); return err },
			path: "/users",
			want: map[string]string{"page": "2", "size": "5"},
		},
		{
			name: "candidates without filters",
			call: func() error { _, err := client.Candidates.List(ctx, DefaultPage(), CandidateFilter{}); return err },
			path: "/candidates",
			want: map[string]string{"page": "0", "size": "10"},
		},
		{
			name: "candidates with one filter",
			call: func() error {
				_, err := client.Candidates.List(ctx, DefaultPage(), CandidateFilter{DisabilityType: candidate.DisabilityVisual})
				return err
			},
			path: "/candidates",
			want: map[string]string{"page": "0", "size": "10", "disabilityType": "VISUAL"},
		},
		{
			name: "candidates with both filters",
			call: func() error {
				_, err := client.Candidates.List(ctx, DefaultPage(), CandidateFilter{DisabilityType: candidate.DisabilityAuditory, Skills: "go, sql"})
				return err
			},
			path: "/candidates",
			want: map[string]string{"page": "0", "size": "10", "disabilityType": "AUDITORY", "skills": "go, sql"},
		},
		{
			name: "companies",
			call: func() error {
				_, err := client.Companies.List(ctx, PageRequest{Page: 1, Size: 20}, CompanyFilter{Sector: "Tech"})
				return err
			},
			path: "/companies",
			want: map[string]string{"page": "1", "size": "20", "sector": "Tech"},
		},
		{
			name: "vacancies",
			call: func() error {
				_, err := client.Vacancies.List(ctx, PageRequest{Size: 20}, VacancyFilter{City: "Recife", VacancyType: vacancy.TypeHybrid})
				return err
			},
			path: "/vacancies",
			want: map[string]string{"page": "0", "size": "20", "city": "Recife", "vacancyType": "HYBRID"},
		},
		{
			name: "vacancies with title only",
			call: func() error {
				_, err := client.Vacancies.List(ctx, PageRequest{}, VacancyFilter{Title: "Analista & Dev"})
				return err
			},
			path: "/vacancies",
			want: map[string]string{"page": "0", "size": "10", "title": "Analista & Dev"},
		},
		{
			name: "candidacies",
			call: func() error { _, err := client.Candidacies.List(ctx, DefaultPage()); return err },
			path: "/candidacies",
			want: map[string]string{"page": "0", "size": "10"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			req := backend.last(t)
			if req.Method != http.MethodGet || req.Path != tc.path {
				t.Fatalf("unexpected request %s %s", req.Method, req.Path)
			}
			got := make(map[string]string, len(req.Query))
			for key, values := range req.Query {
				if len(values) != 1 {
					t.Fatalf("expected one value for %s, got %v", key, values)
				}
				got[key] = values[0]
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected query %v, got %v (keys %v)", tc.want, got, queryKeys(req.Query))
			}
		})
	}
}

func TestListDecodesPage(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		writeJSON(w, http.StatusOK, map[string]any{
			"content":       []vacancy.Vacancy{{ID: 1, Title: "Dev"}, {ID: 2, Title: "QA"}},
			"totalElements": 12,
			"totalPages":    2,
			"number":        0,
			"size":          10,
			"last":          false,
		})
	})
	client := newTestClient(t, backend, nil, nil)

	result, err := client.Vacancies.List(context.Background(), DefaultPage(), VacancyFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Content) != 2 || result.Content[1].Title != "QA" {
		t.Fatalf("unexpected content %+v", result.Content)
	}
	if result.TotalElements != 12 || result.TotalPages != 2 || result.Last {
		t.Fatalf("unexpected page metadata %+v", result)
	}
}

func TestCRUDMethodsAndPaths(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request, body []byte) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": 42, "name": "Acme"})
	})
	client := newTestClient(t, backend, nil, nil)
	ctx := context.Background()

	created, err := client.Companies.Create(ctx, company.Company{UserID: 1, Name: "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 42 {
		t.Fatalf("expected parsed body, got %+v", created)
	}
	if _, err := client.Companies.Get(ctx, 42); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := client.Companies.Update(ctx, 42, company.Company{Name: "Acme SA"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := client.Companies.Delete(ctx, 42); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []struct{ method, path string }{
		{http.MethodPost, "/companies"},
		{http.MethodGet, "/companies/42"},
		{http.MethodPut, "/companies/42"},
		{http.MethodDelete, "/companies/42"},
	}
	reqs := backend.all()
	if len(reqs) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(reqs))
	}
	for i, w := range want {
		if reqs[i].Method != w.method || reqs[i].Path != w.path {
			t.Fatalf("request %d: expected %s %s, got %s %s", i, w.method, w.path, reqs[i].Method, reqs[i].Path)
		}
	}
	var body company.Company
	if err := json.Unmarshal(reqs[2].Body, &body); err != nil {
		t.Fatalf("decode update body: %v", err)
	}
	if body.Name != "Acme SA" {
		t.Fatalf("unexpected update body %+v", body)
	}
}

func TestCandidacyStatusUpdateUsesPatch(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		writeJSON(w, http.StatusOK, candidacy.Candidacy{ID: 9, Status: candidacy.StatusApproved})
	})
	client := newTestClient(t, backend, nil, nil)

	updated, err := client.Candidacies.UpdateStatus(context.Background(), 9, candidacy.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != candidacy.StatusApproved {
		t.Fatalf("unexpected response %+v", updated)
	}
	req := backend.last(t)
	if req.Method != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", req.Method)
	}
	if req.Path != "/candidacies/9/status" {
		t.Fatalf("unexpected path %s", req.Path)
	}
	var body map[string]string
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "APPROVED" {
		t.Fatalf("expected status in body, got %v", body)
	}
}

func TestCandidacyListsByCandidateAndVacancy(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		writeJSON(w, http.StatusOK, page([]candidacy.Candidacy{{ID: 1}}, true))
	})
	client := newTestClient(t, backend, nil, nil)
	ctx := context.Background()

	if _, err := client.Candidacies.ListByCandidate(ctx, 5, PageRequest{Page: 0, Size: 20}); err != nil {
		t.Fatalf("list by candidate: %v", err)
	}
	req := backend.last(t)
	if req.Path != "/candidacies/candidates/5" || req.Query["size"][0] != "20" {
		t.Fatalf("unexpected request %s %v", req.Path, req.Query)
	}

	if _, err := client.Candidacies.ListByVacancy(ctx, 8, DefaultPage()); err != nil {
		t.Fatalf("list by vacancy: %v", err)
	}
	if req := backend.last(t); req.Path != "/candidacies/vacancy/8" {
		t.Fatalf("unexpected path %s", req.Path)
	}
}

func TestCreateFillsDefaults(t *testing.T) {
	backend := newFakeBackend(t, nil)
	client := newTestClient(t, backend, nil, nil)
	ctx := context.Background()

	if _, err := client.Candidates.Create(ctx, candidate.Candidate{UserID: 3, Skills: "Go"}); err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	var c candidate.Candidate
	if err := json.Unmarshal(backend.last(t).Body, &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if c.DisabilityType != candidate.DisabilityNotInformed {
		t.Fatalf("expected default disability type, got %q", c.DisabilityType)
	}

	if _, err := client.Candidacies.Create(ctx, candidacy.Candidacy{CandidateID: 1, VacancyID: 2}); err != nil {
		t.Fatalf("create candidacy: %v", err)
	}
	var cd candidacy.Candidacy
	if err := json.Unmarshal(backend.last(t).Body, &cd); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cd.Status != candidacy.StatusUnderAnalysis {
		t.Fatalf("expected default status, got %q", cd.Status)
	}
}

func TestUserPasswordIsSentOnCreate(t *testing.T) {
	backend := newFakeBackend(t, nil)
	client := newTestClient(t, backend, nil, nil)
	if _, err := client.Users.Create(context.Background(), user.User{Name: "Ana", Email: "ana@x.com", Password: "secret1", UserRole: user.RoleCandidate}); err != nil {
		t.Fatalf("create: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(backend.last(t).Body, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["password"] != "secret1" || body["userRole"] != "CANDIDATE" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestFailedCallLeavesSessionUntouched(t *testing.T) {
	backend := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request, _ []byte) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})
	manager := session.NewManager(session.NewMemoryStore(), nil)
	ctx := context.Background()
	before := session.Session{Token: "T1", UserID: "1", UserRole: user.RoleCandidate, CandidateID: "7"}
	if err := manager.Set(ctx, before); err != nil {
		t.Fatalf("set: %v", err)
	}
	client := newTestClient(t, backend, manager, nil)

	if err := client.Candidates.Delete(ctx, 7); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := client.Candidacies.UpdateStatus(ctx, 1, candidacy.StatusRejected); err == nil {
		t.Fatalf("expected error")
	}
	after, err := manager.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if after != before {
		t.Fatalf("expected session unchanged, got %+v", after)
	}
}
