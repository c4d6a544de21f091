package authz

import (
	"fmt"

	"github.com/jewelbridge/internal/models"
)

// RoleSeed 预置角色：继承上一级角色并追加自身策略
type RoleSeed struct {
	Role     models.Role
	Inherits models.Role
	Policies []Policy
}

// BuiltinRoleSeeds guest < customer < shopkeeper < admin
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role:     models.RoleGuest,
			Inherits: models.RoleGuest,
			Policies: []Policy{
				{Object: "/auth/login", Action: "POST"},
				{Object: "/auth/register", Action: "POST"},
				{Object: "/auth/logout", Action: "POST"},
				{Object: "/me", Action: "GET"},
				{Object: "/cart", Action: "GET"},
				{Object: "/cart", Action: "DELETE"},
				{Object: "/cart/items", Action: "POST"},
				{Object: "/cart/items/:product_id", Action: "PUT"},
				{Object: "/cart/items/:product_id", Action: "DELETE"},
				{Object: "/visit-requests", Action: "GET"},
				{Object: "/visit-requests", Action: "POST"},
			},
		},
		{Role: models.RoleCustomer, Inherits: models.RoleGuest},
		{
			Role:     models.RoleShopkeeper,
			Inherits: models.RoleCustomer,
			Policies: []Policy{
				{Object: "/dashboard/overview", Action: "GET"},
				{Object: "/dashboard/products", Action: "GET"},
				{Object: "/dashboard/visit-requests", Action: "GET"},
				{Object: "/dashboard/visit-requests/:id", Action: "PATCH"},
			},
		},
		{
			Role:     models.RoleAdmin,
			Inherits: models.RoleShopkeeper,
			Policies: []Policy{{Object: "/*", Action: "*"}},
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色矩阵，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	for _, seed := range BuiltinRoleSeeds() {
		subject := SubjectForRole(seed.Role)
		if seed.Inherits != seed.Role {
			if _, err := s.enforcer.AddGroupingPolicy(subject, SubjectForRole(seed.Inherits)); err != nil {
				return fmt.Errorf("link role %s failed: %w", seed.Role, err)
			}
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return ErrActionRequired
			}
			if _, err := s.enforcer.AddPolicy(subject, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add policy for %s failed: %w", seed.Role, err)
			}
		}
	}
	return nil
}
