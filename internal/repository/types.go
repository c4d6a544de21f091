package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	ShopID     string
	Search     string
	OnlyActive bool
}

// VisitRequestListFilter 查询到店预约列表的过滤条件
type VisitRequestListFilter struct {
	Page        int
	PageSize    int
	SessionID   string
	CustomerID  string
	ShopID      string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// VisitRequestStatusCount 按状态聚合的预约数量
type VisitRequestStatusCount struct {
	Status string
	Total  int64
}
