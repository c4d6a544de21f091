package service

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"
)

func productIDs(products []models.Product) []string {
	ids := make([]string, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

func TestFilterProductsSearchGold(t *testing.T) {
	catalog := newSeededCatalog(t)
	criteria := DefaultFilterCriteria()
	criteria.Search = "gold"

	got := FilterProducts(catalog.Products(), criteria, catalog)
	for _, product := range got {
		haystack := strings.ToLower(product.Name + product.Description + product.Category + product.MetalType)
		if !strings.Contains(haystack, "gold") {
			t.Fatalf("%s does not contain gold", product.ID)
		}
	}
	want := []string{"prod-1", "prod-2", "prod-3", "prod-4", "prod-6"}
	if !reflect.DeepEqual(productIDs(got), want) {
		t.Fatalf("want %v got %v", want, productIDs(got))
	}
}

func TestFilterProductsIsIdempotentAndStable(t *testing.T) {
	catalog := newSeededCatalog(t)
	criteria := FilterCriteria{
		Search:     "",
		Category:   constants.FilterAll,
		MetalType:  constants.MetalGold,
		City:       "Hyderabad",
		PriceRange: PriceRange{Min: 40000, Max: 200000},
	}
	once := FilterProducts(catalog.Products(), criteria, catalog)
	twice := FilterProducts(once, criteria, catalog)
	if !reflect.DeepEqual(productIDs(once), productIDs(twice)) {
		t.Fatalf("filter not idempotent: %v vs %v", productIDs(once), productIDs(twice))
	}
	want := []string{"prod-2", "prod-3", "prod-4", "prod-6"}
	if !reflect.DeepEqual(productIDs(once), want) {
		t.Fatalf("want %v got %v", want, productIDs(once))
	}
}

func TestFilterProductsPriceRangeIsInclusive(t *testing.T) {
	catalog := newSeededCatalog(t)
	criteria := DefaultFilterCriteria()
	criteria.PriceRange = PriceRange{Min: 8500, Max: 42000}
	got := productIDs(FilterProducts(catalog.Products(), criteria, catalog))
	if !reflect.DeepEqual(got, []string{"prod-4", "prod-5"}) {
		t.Fatalf("inclusive bounds broken: %v", got)
	}
}

func TestFilterProductsCategoryAndEmptySentinel(t *testing.T) {
	catalog := newSeededCatalog(t)
	criteria := FilterCriteria{Category: constants.CategoryRings, PriceRange: PriceRange{Max: 500000}}
	got := productIDs(FilterProducts(catalog.Products(), criteria, catalog))
	if !reflect.DeepEqual(got, []string{"prod-4"}) {
		t.Fatalf("rings want [prod-4] got %v", got)
	}

	criteria = FilterCriteria{PriceRange: PriceRange{Max: 500000}}
	if n := len(FilterProducts(catalog.Products(), criteria, catalog)); n != 6 {
		t.Fatalf("empty options should behave as all, got %d", n)
	}
}

func TestFilterProductsCityExcludesDanglingShop(t *testing.T) {
	catalog := newSeededCatalog(t)
	orphan := models.Product{ID: "prod-orphan", ShopID: "shop-404", Price: 100}
	products := append(catalog.Products(), orphan)

	criteria := DefaultFilterCriteria()
	criteria.City = "Hyderabad"
	got := productIDs(FilterProducts(products, criteria, catalog))
	for _, id := range got {
		if id == "prod-orphan" {
			t.Fatalf("dangling shop must be excluded for a specific city")
		}
	}

	criteria.City = constants.FilterAll
	got = productIDs(FilterProducts(products, criteria, catalog))
	if got[len(got)-1] != "prod-orphan" {
		t.Fatalf("city=all must keep dangling shop products: %v", got)
	}

	criteria.City = "Mumbai"
	if n := len(FilterProducts(products, criteria, catalog)); n != 0 {
		t.Fatalf("no shop in Mumbai, got %d", n)
	}
}
