package user

import "testing"

func TestRoleValid(t *testing.T) {
	if !RoleCandidate.Valid() || !RoleCompany.Valid() {
		t.Fatalf("expected known roles to be valid")
	}
	if Role("ADMIN").Valid() || Role("").Valid() {
		t.Fatalf("expected unknown role to be invalid")
	}
}
