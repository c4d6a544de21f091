package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"
	"github.com/jewelbridge/internal/provider"
	"github.com/jewelbridge/internal/repository"
	"github.com/jewelbridge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type publicTestEnv struct {
	engine    *gin.Engine
	container *provider.Container
	session   *service.Session
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newPublicTestEnv(t *testing.T) *publicTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	if _, err := models.SeedCatalog(db); err != nil {
		t.Fatalf("seed catalog failed: %v", err)
	}

	catalog := service.NewCatalogService(repository.NewCatalogRepository(db), config.CatalogConfig{})
	if err := catalog.Reload(); err != nil {
		t.Fatalf("load catalog failed: %v", err)
	}
	sessions := service.NewSessionService(
		config.JWTConfig{SecretKey: "handler-test-secret", ExpireHours: 24},
		config.SessionConfig{IdleTimeoutMinutes: 30},
		service.NewSimulatedAuthProvider(0, 0),
	)
	container := &provider.Container{
		CatalogService:      catalog,
		SessionService:      sessions,
		VisitRequestService: service.NewVisitRequestService(repository.NewVisitRequestRepository(db), config.VisitRequestConfig{HoldHours: 48}, nil, nil),
	}
	session, _, err := sessions.Create()
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	h := New(container)
	engine := gin.New()
	api := engine.Group("/api/v1")
	api.POST("/session", h.CreateSession)
	api.GET("/products", h.GetProducts)
	api.GET("/products/featured", h.GetFeaturedProducts)
	api.GET("/products/:id", h.GetProduct)

	authed := api.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeySession, session)
		c.Next()
	})
	authed.POST("/auth/login", h.Login)
	authed.POST("/auth/logout", h.Logout)
	authed.GET("/me", h.GetMe)
	authed.GET("/cart", h.GetCart)
	authed.DELETE("/cart", h.ClearCart)
	authed.POST("/cart/items", h.AddCartItem)
	authed.PUT("/cart/items/:product_id", h.UpdateCartItem)
	authed.DELETE("/cart/items/:product_id", h.RemoveCartItem)
	authed.POST("/visit-requests", h.CreateVisitRequest)
	authed.GET("/visit-requests", h.ListVisitRequests)

	return &publicTestEnv{engine: engine, container: container, session: session}
}

func (e *publicTestEnv) do(t *testing.T, method, path string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s expected http 200, got %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
	}
	return resp
}

func decodeData(t *testing.T, resp envelope, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, target); err != nil {
		t.Fatalf("decode data failed: %v data=%s", err, string(resp.Data))
	}
}

func TestCreateSessionIssuesToken(t *testing.T) {
	env := newPublicTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/v1/session", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("expected success, got %d %s", resp.StatusCode, resp.Msg)
	}
	var data SessionResponse
	decodeData(t, resp, &data)
	if data.SessionID == "" || data.Token.Token == "" {
		t.Fatalf("expected session id and token, got %+v", data)
	}
	if _, err := env.container.SessionService.Resolve(data.Token.Token); err != nil {
		t.Fatalf("issued token should resolve: %v", err)
	}
}

func TestGetProductsAppliesQueryFilter(t *testing.T) {
	env := newPublicTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/v1/products?search=gold&city=Hyderabad&min_price=40000&max_price=200000", nil)
	var data struct {
		Total    int           `json:"total"`
		Products []ProductView `json:"products"`
	}
	decodeData(t, resp, &data)
	views := data.Products
	if data.Total != len(views) {
		t.Fatalf("total %d does not match %d products", data.Total, len(views))
	}
	got := make([]string, 0, len(views))
	for _, view := range views {
		got = append(got, view.ID)
	}
	if strings.Join(got, ",") != "prod-2,prod-3,prod-4,prod-6" {
		t.Fatalf("unexpected filter result: %v", got)
	}
	if views[0].PriceDisplay != "₹95,000" {
		t.Fatalf("unexpected price display: %s", views[0].PriceDisplay)
	}
}

func TestGetProductNotFound(t *testing.T) {
	env := newPublicTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/v1/products/prod-missing", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 status code, got %d", resp.StatusCode)
	}
}

func TestCartFlowClampsToStock(t *testing.T) {
	env := newPublicTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-1", Quantity: 2})
	var cart CartResponse
	decodeData(t, resp, &cart)
	if cart.Count != 2 || cart.Total != 570000 {
		t.Fatalf("unexpected cart after first add: count=%d total=%d", cart.Count, cart.Total)
	}
	if len(cart.Notices) != 1 || cart.Notices[0].Message != "Traditional Gold Bangles Set added to cart" {
		t.Fatalf("unexpected notices: %+v", cart.Notices)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-1", Quantity: 5})
	decodeData(t, resp, &cart)
	if cart.Count != 3 || cart.TotalDisplay != "₹8,55,000" {
		t.Fatalf("expected clamp to stock 3, got count=%d total=%s", cart.Count, cart.TotalDisplay)
	}

	resp = env.do(t, http.MethodPut, "/api/v1/cart/items/prod-1", map[string]int{"quantity": 0})
	decodeData(t, resp, &cart)
	if cart.Count != 0 || len(cart.Items) != 0 {
		t.Fatalf("expected zero quantity to remove item, got %+v", cart.Items)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	env := newPublicTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-x", Quantity: 1})
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 status code, got %d", resp.StatusCode)
	}
	if env.session.Cart.Count() != 0 {
		t.Fatalf("cart should stay empty")
	}
}

func TestLoginLogoutKeepsCart(t *testing.T) {
	env := newPublicTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-5", Quantity: 2})

	resp := env.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Email: "owner@shop.example", Password: "x", Role: "shopkeeper"})
	if resp.StatusCode != 0 {
		t.Fatalf("login failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var me MeResponse
	decodeData(t, resp, &me)
	if !me.Authenticated || me.Role != models.RoleShopkeeper || me.User == nil || me.User.ShopID != constants.SimulatedShopID {
		t.Fatalf("unexpected me after login: %+v", me)
	}

	resp = env.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	decodeData(t, resp, &me)
	if me.Authenticated || me.Role != models.RoleGuest {
		t.Fatalf("expected guest after logout, got %+v", me)
	}
	if env.session.Cart.Count() != 2 {
		t.Fatalf("logout should keep cart, got count %d", env.session.Cart.Count())
	}
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	env := newPublicTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/v1/auth/login", LoginRequest{Email: "a@b.example", Role: "owner"})
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400 status code, got %d", resp.StatusCode)
	}
}

func TestCreateVisitRequestMovesShopSubset(t *testing.T) {
	env := newPublicTestEnv(t)
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-1", Quantity: 1})
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-3", Quantity: 1})
	env.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: "prod-6", Quantity: 2})

	resp := env.do(t, http.MethodPost, "/api/v1/visit-requests", CreateVisitRequestRequest{ShopID: "shop-1"})
	if resp.StatusCode != 0 {
		t.Fatalf("create visit request failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var data struct {
		VisitRequest VisitRequestView `json:"visit_request"`
		Cart         CartResponse     `json:"cart"`
	}
	decodeData(t, resp, &data)
	if data.VisitRequest.TotalEstimatedAmount != 641000 || len(data.VisitRequest.Items) != 2 {
		t.Fatalf("unexpected visit request: total=%d items=%d", data.VisitRequest.TotalEstimatedAmount, len(data.VisitRequest.Items))
	}
	if data.VisitRequest.Status != constants.VisitRequestStatusCreated || data.VisitRequest.ShopName != "Lakshmi Gold Palace" {
		t.Fatalf("unexpected visit request view: %+v", data.VisitRequest)
	}
	if len(data.Cart.Items) != 1 || data.Cart.Items[0].Product.ID != "prod-3" {
		t.Fatalf("expected only prod-3 left in cart, got %+v", data.Cart.Items)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/visit-requests", nil)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	var page struct {
		Data       []VisitRequestView `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode list failed: %v", err)
	}
	if page.Pagination.Total != 1 || len(page.Data) != 1 || page.Data[0].ID != data.VisitRequest.ID {
		t.Fatalf("unexpected list: %+v", page)
	}
}

func TestMissingSessionIsUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := New(&provider.Container{})
	engine := gin.New()
	engine.GET("/cart", h.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 status code, got %d", resp.StatusCode)
	}
}
