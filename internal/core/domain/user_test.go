package domain

import "testing"

func TestRole_Satisfies(t *testing.T) {
	if !RoleAdmin.Satisfies(RoleUser) {
		t.Fatalf("admin should satisfy the user tier")
	}
	if !RoleAdmin.Satisfies(RoleAdmin) {
		t.Fatalf("admin should satisfy the admin tier")
	}
	if !RoleUser.Satisfies(RoleUser) {
		t.Fatalf("user should satisfy the user tier")
	}
	if RoleUser.Satisfies(RoleAdmin) {
		t.Fatalf("user must not satisfy the admin tier")
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole("admin"); err != nil || r != RoleAdmin {
		t.Fatalf("expected admin, got %q (%v)", r, err)
	}
	if r, err := ParseRole("user"); err != nil || r != RoleUser {
		t.Fatalf("expected user, got %q (%v)", r, err)
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
	if _, err := ParseRole(""); err == nil {
		t.Fatalf("expected error for empty role")
	}
}
