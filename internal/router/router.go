package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jewelbridge/internal/authz"
	"github.com/jewelbridge/internal/cache"
	"github.com/jewelbridge/internal/config"
	dashboardhandlers "github.com/jewelbridge/internal/http/handlers/dashboard"
	publichandlers "github.com/jewelbridge/internal/http/handlers/public"
	"github.com/jewelbridge/internal/http/response"
	"github.com/jewelbridge/internal/logger"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/仪表盘分组）
	publicHandler := publichandlers.New(c)
	dashboardHandler := dashboardhandlers.New(c)
	redisPrefix := cfg.Redis.KeyPrefix()
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group(apiPrefix)
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/featured", publicHandler.GetFeaturedProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/shops", publicHandler.GetShops)
			public.GET("/shops/:id", publicHandler.GetShop)
		}

		// 匿名会话签发
		apiV1.POST("/sessions", publicHandler.CreateSession)

		// 会话接口（按角色鉴权）
		session := apiV1.Group("")
		session.Use(SessionMiddleware(c.SessionService), RoleGateMiddleware(c.AuthzService))
		{
			session.POST("/auth/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			session.POST("/auth/register", RateLimitMiddleware(redisClient, registerRule, KeyBySession), publicHandler.Register)
			session.POST("/auth/logout", publicHandler.Logout)
			session.GET("/me", publicHandler.GetMe)

			session.GET("/cart", publicHandler.GetCart)
			session.DELETE("/cart", publicHandler.ClearCart)
			session.POST("/cart/items", publicHandler.AddCartItem)
			session.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			session.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)

			session.POST("/visit-requests", publicHandler.CreateVisitRequest)
			session.GET("/visit-requests", publicHandler.ListVisitRequests)

			// 店铺仪表盘
			session.GET("/dashboard/overview", dashboardHandler.GetOverview)
			session.GET("/dashboard/products", dashboardHandler.GetProducts)
			session.GET("/dashboard/visit-requests", dashboardHandler.GetVisitRequests)
			session.PATCH("/dashboard/visit-requests/:id", dashboardHandler.PatchVisitRequest)
			session.GET("/dashboard/permissions", func(ctx *gin.Context) {
				response.Success(ctx, gin.H{
					"routes":   buildPermissionCatalog(r, c.AuthzService),
					"policies": buildRolePolicyMatrix(c.AuthzService),
				})
			})
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok", "sessions": c.SessionService.Count()})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string        `json:"module"`
	Method     string        `json:"method"`
	Object     string        `json:"object"`
	Permission string        `json:"permission"`
	Roles      []models.Role `json:"roles"`
}

// buildPermissionCatalog 列出需要会话鉴权的路由，供角色授权配置参考
func buildPermissionCatalog(engine *gin.Engine, authzService *authz.Service) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, apiPrefix+"/") || isUngatedPath(item.Path) {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		var roles []models.Role
		if authzService != nil {
			allowed, err := authzService.AllowedRoles(object, method)
			if err != nil {
				logger.Warnw("permission_catalog_roles_failed", "permission", permission, "error", err)
			}
			roles = allowed
		}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
			Roles:      roles,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

// buildRolePolicyMatrix 各会话角色直接持有的策略
func buildRolePolicyMatrix(authzService *authz.Service) map[string][]authz.Policy {
	matrix := make(map[string][]authz.Policy, len(authz.SessionRoles))
	if authzService == nil {
		return matrix
	}
	for _, role := range authz.SessionRoles {
		policies, err := authzService.RolePolicies(role)
		if err != nil {
			logger.Warnw("permission_matrix_failed", "role", role.String(), "error", err)
			continue
		}
		matrix[role.String()] = policies
	}
	return matrix
}

func isUngatedPath(path string) bool {
	return strings.HasPrefix(path, apiPrefix+"/public/") || path == apiPrefix+"/sessions"
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if segments[0] == "me" {
		return "auth"
	}
	return segments[0]
}
