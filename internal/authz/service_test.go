package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jewelbridge/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap must be idempotent: %v", err)
	}

	cases := []struct {
		role   models.Role
		object string
		action string
		want   bool
	}{
		{models.RoleGuest, "/api/v1/cart/items/prod-1", "PUT", true},
		{models.RoleGuest, "/api/v1/visit-requests", "POST", true},
		{models.RoleGuest, "/api/v1/dashboard/overview", "GET", false},
		{models.RoleCustomer, "/api/v1/cart", "GET", true},
		{models.RoleCustomer, "/api/v1/dashboard/visit-requests/vr-1", "PATCH", false},
		{models.RoleShopkeeper, "/api/v1/dashboard/visit-requests/vr-1", "PATCH", true},
		{models.RoleShopkeeper, "/api/v1/dashboard/products", "DELETE", false},
		{models.RoleShopkeeper, "/api/v1/me", "GET", true},
		{models.RoleAdmin, "/api/v1/dashboard/products", "DELETE", true},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.action, tc.object, err)
		}
		if allow != tc.want {
			t.Fatalf("%s %s %s want %v got %v", tc.role, tc.action, tc.object, tc.want, allow)
		}
	}
}

func TestAllowedRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	roles, err := svc.AllowedRoles("/api/v1/dashboard/overview", "get")
	if err != nil {
		t.Fatalf("allowed roles failed: %v", err)
	}
	if len(roles) != 2 || roles[0] != models.RoleShopkeeper || roles[1] != models.RoleAdmin {
		t.Fatalf("dashboard roles want [shopkeeper admin] got %v", roles)
	}

	roles, err = svc.AllowedRoles("/cart", "GET")
	if err != nil {
		t.Fatalf("allowed roles failed: %v", err)
	}
	if len(roles) != len(SessionRoles) {
		t.Fatalf("cart should be open to every role, got %v", roles)
	}
}

func TestRolePoliciesExcludeInherited(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	policies, err := svc.RolePolicies(models.RoleCustomer)
	if err != nil {
		t.Fatalf("role policies failed: %v", err)
	}
	if len(policies) != 0 {
		t.Fatalf("customer holds no direct policies, got %+v", policies)
	}

	policies, err = svc.RolePolicies(models.RoleShopkeeper)
	if err != nil {
		t.Fatalf("role policies failed: %v", err)
	}
	if len(policies) != 4 || policies[0].Object != "/dashboard/overview" || policies[3].Action != "PATCH" {
		t.Fatalf("unexpected shopkeeper policies: %+v", policies)
	}
}

func TestNilServiceUnavailable(t *testing.T) {
	var svc *Service
	if _, err := svc.EnforceRole(models.RoleAdmin, "/cart", "GET"); err != ErrUnavailable {
		t.Fatalf("want ErrUnavailable got %v", err)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/dashboard/visit-requests/:id", want: "/dashboard/visit-requests/:id"},
		{in: "/cart/items", want: "/cart/items"},
		{in: "cart", want: "/cart"},
		{in: "/api/v1", want: "/"},
		{in: "/api/v1x", want: "/api/v1x"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		if got := NormalizeObject(item.in); got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
	if SubjectForRole(models.RoleAdmin) != "role:admin" {
		t.Fatalf("unexpected admin subject")
	}
}
