package service

import (
	"testing"

	"github.com/jewelbridge/internal/config"
	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"
)

func newSeededCatalog(t *testing.T) *CatalogService {
	t.Helper()
	seed := models.CatalogSeed()
	catalog := NewCatalogService(nil, config.CatalogConfig{})
	catalog.Load(seed.Shops, seed.Products, seed.Reviews)
	return catalog
}

func mustProduct(t *testing.T, catalog *CatalogService, id string) models.Product {
	t.Helper()
	product, ok := catalog.ProductByID(id)
	if !ok {
		t.Fatalf("product %s not found in seed", id)
	}
	return product
}

func TestCatalogLookups(t *testing.T) {
	catalog := newSeededCatalog(t)

	if len(catalog.Shops()) != 3 || len(catalog.Products()) != 6 {
		t.Fatalf("unexpected seed sizes shops=%d products=%d", len(catalog.Shops()), len(catalog.Products()))
	}
	shop, ok := catalog.ShopByID("shop-2")
	if !ok || shop.Name != "Sri Ganesh Jewellers" {
		t.Fatalf("unexpected shop-2: %+v", shop)
	}
	if _, ok := catalog.ShopByID("shop-404"); ok {
		t.Fatalf("missing shop should not be found")
	}
	byShop := catalog.ProductsByShop("shop-1")
	if len(byShop) != 3 || byShop[0].ID != "prod-1" || byShop[2].ID != "prod-6" {
		t.Fatalf("unexpected shop-1 products: %+v", byShop)
	}
	if reviews := catalog.ReviewsByProduct("prod-1"); len(reviews) != 1 || reviews[0].CustomerName != "Priya S." {
		t.Fatalf("unexpected prod-1 reviews: %+v", reviews)
	}
}

func TestCatalogFeaturedAndSimilar(t *testing.T) {
	catalog := newSeededCatalog(t)

	featured := catalog.FeaturedProducts()
	if len(featured) != 4 {
		t.Fatalf("featured want 4 got %d", len(featured))
	}
	for i, product := range featured {
		if product.ID != catalog.Products()[i].ID {
			t.Fatalf("featured must be the first products, got %s at %d", product.ID, i)
		}
	}

	similar := catalog.SimilarProducts(mustProduct(t, catalog, "prod-5"))
	if len(similar) != 0 {
		t.Fatalf("silver anklets have no similar products, got %+v", similar)
	}

	bangles := mustProduct(t, catalog, "prod-1")
	bangles.ID = "prod-x"
	similar = catalog.SimilarProducts(bangles)
	if len(similar) != 1 || similar[0].ID != "prod-1" {
		t.Fatalf("similar should match category and metal, got %+v", similar)
	}
	if self := catalog.SimilarProducts(mustProduct(t, catalog, "prod-1")); len(self) != 0 {
		t.Fatalf("product must not be similar to itself: %+v", self)
	}
}

func TestCatalogAverageRating(t *testing.T) {
	catalog := NewCatalogService(nil, config.CatalogConfig{})
	catalog.Load(nil, nil, []models.Review{
		{ID: "r1", ProductID: "p", Rating: 5},
		{ID: "r2", ProductID: "p", Rating: 4},
		{ID: "r3", ProductID: "p", Rating: 4},
	})
	if got := catalog.AverageRating("p"); got != 4.33 {
		t.Fatalf("average want 4.33 got %v", got)
	}
	if got := catalog.AverageRating("none"); got != 0 {
		t.Fatalf("no reviews want 0 got %v", got)
	}
}

func TestStockStatus(t *testing.T) {
	catalog := newSeededCatalog(t)
	cases := map[int]string{
		0:  constants.StockStatusOutOfStock,
		1:  constants.StockStatusLowStock,
		3:  constants.StockStatusLowStock,
		4:  constants.StockStatusInStock,
		15: constants.StockStatusInStock,
	}
	for stock, want := range cases {
		if got := catalog.StockStatus(models.Product{StockQty: stock}); got != want {
			t.Fatalf("stock %d want %s got %s", stock, want, got)
		}
	}
}

func TestCatalogOptions(t *testing.T) {
	catalog := newSeededCatalog(t)
	if len(catalog.CategoryOptions()) != 7 || len(catalog.MetalOptions()) != 4 {
		t.Fatalf("unexpected option sizes")
	}
	cities := catalog.CityOptions()
	if len(cities) != 5 || cities[0] != "Hyderabad" {
		t.Fatalf("unexpected cities: %v", cities)
	}
	if catalog.MaxPrice() != 500000 {
		t.Fatalf("max price want 500000 got %d", catalog.MaxPrice())
	}
}

func TestCatalogReloadWithoutRepository(t *testing.T) {
	catalog := NewCatalogService(nil, config.CatalogConfig{})
	if err := catalog.Reload(); err != ErrCatalogNotLoaded {
		t.Fatalf("want ErrCatalogNotLoaded got %v", err)
	}
	if len(catalog.Products()) != 0 {
		t.Fatalf("empty catalog should have no products")
	}
}

func TestDashboardShopIDFallsBackToFirstShop(t *testing.T) {
	catalog := newSeededCatalog(t)
	if got := catalog.DashboardShopID("shop-2"); got != "shop-2" {
		t.Fatalf("known shop should be kept, got %s", got)
	}
	if got := catalog.DashboardShopID("shop-1792247249440"); got != "shop-1" {
		t.Fatalf("unknown shop should fall back to shop-1, got %s", got)
	}

	empty := NewCatalogService(nil, config.CatalogConfig{})
	empty.Load(nil, nil, nil)
	if got := empty.DashboardShopID("shop-9"); got != "shop-9" {
		t.Fatalf("empty catalog should keep the id, got %s", got)
	}
}
