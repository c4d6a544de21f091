package router

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jewelbridge/internal/authz"
	"github.com/jewelbridge/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestBuildPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	noop := func(c *gin.Context) {}

	r := gin.New()
	api := r.Group(apiPrefix)
	api.GET("/public/products", noop)
	api.POST("/sessions", noop)
	api.GET("/cart", noop)
	api.POST("/cart/items", noop)
	api.GET("/me", noop)
	api.PATCH("/dashboard/visit-requests/:id", noop)
	r.GET("/health", noop)

	items := buildPermissionCatalog(r, nil)
	want := []string{
		"GET:/me",
		"GET:/cart",
		"POST:/cart/items",
		"PATCH:/dashboard/visit-requests/:id",
	}
	if len(items) != len(want) {
		t.Fatalf("catalog size want %d got %d: %+v", len(want), len(items), items)
	}
	for i, permission := range want {
		if items[i].Permission != permission {
			t.Fatalf("item %d want %s got %s", i, permission, items[i].Permission)
		}
	}
	if items[0].Module != "auth" || items[3].Module != "dashboard" {
		t.Fatalf("unexpected modules: %+v", items)
	}
	if buildPermissionCatalog(nil, nil) == nil {
		t.Fatalf("nil engine should return empty catalog")
	}
}

func TestDerivePermissionModule(t *testing.T) {
	cases := map[string]string{
		"":                        "system",
		"/me":                     "auth",
		"/auth/login":             "auth",
		"/visit-requests":         "visit-requests",
		"/dashboard/overview":     "dashboard",
		"/cart/items/:product_id": "cart",
	}
	for object, want := range cases {
		if got := derivePermissionModule(object); got != want {
			t.Fatalf("module for %q want %s got %s", object, want, got)
		}
	}
}

func TestPermissionCatalogListsAllowedRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	noop := func(c *gin.Context) {}
	r := gin.New()
	r.GET(apiPrefix+"/dashboard/overview", noop)

	items := buildPermissionCatalog(r, authzService)
	if len(items) != 1 {
		t.Fatalf("catalog size want 1 got %d", len(items))
	}
	roles := items[0].Roles
	if len(roles) != 2 || roles[0] != models.RoleShopkeeper || roles[1] != models.RoleAdmin {
		t.Fatalf("overview roles want [shopkeeper admin] got %v", roles)
	}

	matrix := buildRolePolicyMatrix(authzService)
	if len(matrix["guest"]) == 0 || len(matrix["customer"]) != 0 {
		t.Fatalf("unexpected policy matrix: %+v", matrix)
	}
	if len(buildRolePolicyMatrix(nil)) != 0 {
		t.Fatalf("nil authz should produce empty matrix")
	}
}
