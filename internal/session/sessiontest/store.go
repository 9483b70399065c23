// Package sessiontest содержит общие проверки для всех реализаций session.Store.
package sessiontest

import (
	"context"
	"testing"

	"inclusive_jobs/internal/domain/user"
	"inclusive_jobs/internal/session"
)

// RunStoreTests проверяет контракт Store на хранилищах из newStore.
// Каждый подтест получает новое хранилище.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Helper()

	t.Run("missing keys are omitted", func(t *testing.T) {
		store := newStore(t)
		items, err := store.MultiGet(context.Background(), []string{"token", "userId"})
		if err != nil {
			t.Fatalf("multi get: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected no items, got %v", items)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		if err := store.MultiSet(ctx, map[string]string{"token": "T1", "userId": "7"}); err != nil {
			t.Fatalf("multi set: %v", err)
		}
		items, err := store.MultiGet(ctx, []string{"token", "userId", "companyId"})
		if err != nil {
			t.Fatalf("multi get: %v", err)
		}
		if items["token"] != "T1" || items["userId"] != "7" {
			t.Fatalf("unexpected items %v", items)
		}
		if _, ok := items["companyId"]; ok {
			t.Fatalf("expected companyId to be absent")
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		if err := store.MultiSet(ctx, map[string]string{"token": "T1"}); err != nil {
			t.Fatalf("multi set: %v", err)
		}
		if err := store.MultiSet(ctx, map[string]string{"token": "T2"}); err != nil {
			t.Fatalf("multi set: %v", err)
		}
		items, err := store.MultiGet(ctx, []string{"token"})
		if err != nil {
			t.Fatalf("multi get: %v", err)
		}
		if items["token"] != "T2" {
			t.Fatalf("expected T2, got %q", items["token"])
		}
	})

	t.Run("remove clears listed keys only", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		if err := store.MultiSet(ctx, map[string]string{"token": "T1", "userId": "7", "other": "x"}); err != nil {
			t.Fatalf("multi set: %v", err)
		}
		if err := store.MultiRemove(ctx, []string{"token", "userId", "candidateId"}); err != nil {
			t.Fatalf("multi remove: %v", err)
		}
		items, err := store.MultiGet(ctx, []string{"token", "userId", "other"})
		if err != nil {
			t.Fatalf("multi get: %v", err)
		}
		if len(items) != 1 || items["other"] != "x" {
			t.Fatalf("unexpected items after remove %v", items)
		}
	})

	t.Run("manager round trip", func(t *testing.T) {
		manager := session.NewManager(newStore(t), nil)
		ctx := context.Background()
		want := session.Session{Token: "T1", UserID: "3", UserRole: user.RoleCompany, CompanyID: "9"}
		if err := manager.Set(ctx, want); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := manager.Current(ctx)
		if err != nil {
			t.Fatalf("current: %v", err)
		}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
		if err := manager.Clear(ctx); err != nil {
			t.Fatalf("clear: %v", err)
		}
		got, err = manager.Current(ctx)
		if err != nil {
			t.Fatalf("current after clear: %v", err)
		}
		if !got.Empty() {
			t.Fatalf("expected empty session, got %+v", got)
		}
	})
}
