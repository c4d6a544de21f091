package service

import (
	"fmt"
	"sync"

	"github.com/jewelbridge/internal/models"
)

// 提示级别
const (
	NoticeLevelSuccess = "success"
	NoticeLevelInfo    = "info"
	NoticeLevelWarning = "warning"
)

// Notice 面向用户的操作提示
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Notifier 接收购物车与预约操作产生的提示
type Notifier interface {
	Notify(level, message string)
}

// NoticeCollector 收集单次请求内产生的提示
type NoticeCollector struct {
	mu      sync.Mutex
	notices []Notice
}

// Notify 记录提示
func (c *NoticeCollector) Notify(level, message string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{Level: level, Message: message})
}

// Notices 返回已收集的提示
func (c *NoticeCollector) Notices() []Notice {
	if c == nil {
		return []Notice{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice{}, c.notices...)
}

type discardNotifier struct{}

func (discardNotifier) Notify(string, string) {}

func notifierOrDiscard(n Notifier) Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}

// CartItem 购物车项
type CartItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// LineTotal 小计
func (i CartItem) LineTotal() int64 {
	return i.Product.Price * int64(i.Quantity)
}

// ShopCartGroup 按店铺分组的购物车
type ShopCartGroup struct {
	ShopID   string     `json:"shop_id"`
	Items    []CartItem `json:"items"`
	Count    int        `json:"count"`
	Subtotal int64      `json:"subtotal"`
}

// CartSnapshot 购物车某一时刻的一致视图
type CartSnapshot struct {
	Items []CartItem
	Shops []ShopCartGroup
	Count int
	Total int64
}

// CartLedger 会话购物车账本
// 每个商品最多一项，数量始终满足 1 <= quantity <= stock；超出库存时截断而不报错。
type CartLedger struct {
	mu    sync.Mutex
	items []CartItem
}

// NewCartLedger 创建空购物车
func NewCartLedger() *CartLedger {
	return &CartLedger{}
}

func (l *CartLedger) indexOf(productID string) int {
	for i := range l.items {
		if l.items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (l *CartLedger) removeAt(idx int) {
	l.items = append(l.items[:idx], l.items[idx+1:]...)
}

// Add 加入购物车，quantity < 1 按 1 处理，返回加入后的数量（0 表示未加入）
func (l *CartLedger) Add(product models.Product, quantity int, n Notifier) int {
	n = notifierOrDiscard(n)
	if quantity < 1 {
		quantity = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.indexOf(product.ID); idx >= 0 {
		newQty := min(l.items[idx].Quantity+quantity, product.StockQty)
		if newQty < 1 {
			l.removeAt(idx)
			n.Notify(NoticeLevelWarning, fmt.Sprintf("%s is out of stock", product.Name))
			return 0
		}
		l.items[idx].Product = product
		l.items[idx].Quantity = newQty
		n.Notify(NoticeLevelSuccess, fmt.Sprintf("Updated quantity to %d", newQty))
		return newQty
	}

	qty := min(quantity, product.StockQty)
	if qty < 1 {
		n.Notify(NoticeLevelWarning, fmt.Sprintf("%s is out of stock", product.Name))
		return 0
	}
	l.items = append(l.items, CartItem{Product: product, Quantity: qty})
	n.Notify(NoticeLevelSuccess, fmt.Sprintf("%s added to cart", product.Name))
	return qty
}

// Remove 移除商品，不存在时为空操作，返回是否实际移除
func (l *CartLedger) Remove(productID string, n Notifier) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(productID, notifierOrDiscard(n))
}

func (l *CartLedger) removeLocked(productID string, n Notifier) bool {
	removed := false
	if idx := l.indexOf(productID); idx >= 0 {
		l.removeAt(idx)
		removed = true
	}
	n.Notify(NoticeLevelInfo, "Item removed from cart")
	return removed
}

// UpdateQuantity 设置数量，quantity <= 0 等同于移除；商品不在购物车时为空操作
func (l *CartLedger) UpdateQuantity(productID string, quantity int, n Notifier) int {
	n = notifierOrDiscard(n)

	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		l.removeLocked(productID, n)
		return 0
	}
	idx := l.indexOf(productID)
	if idx < 0 {
		return 0
	}
	product := l.items[idx].Product
	newQty := min(quantity, product.StockQty)
	if newQty < 1 {
		l.removeAt(idx)
		n.Notify(NoticeLevelWarning, fmt.Sprintf("%s is out of stock", product.Name))
		return 0
	}
	l.items[idx].Quantity = newQty
	return newQty
}

// Clear 清空购物车
func (l *CartLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Total 购物车总额
func (l *CartLedger) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return sumLineTotals(l.items)
}

// Count 购物车件数
func (l *CartLedger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return countQuantities(l.items)
}

// Items 按加入顺序返回购物车项副本
func (l *CartLedger) Items() []CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]CartItem{}, l.items...)
}

// Quantity 指定商品的当前数量
func (l *CartLedger) Quantity(productID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx := l.indexOf(productID); idx >= 0 {
		return l.items[idx].Quantity
	}
	return 0
}

// GroupByShop 按店铺首次出现顺序分组
func (l *CartLedger) GroupByShop() []ShopCartGroup {
	l.mu.Lock()
	defer l.mu.Unlock()
	return groupByShop(l.items)
}

// Snapshot 同一把锁内读取明细、分组、件数与总额，保证彼此一致
func (l *CartLedger) Snapshot() CartSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return CartSnapshot{
		Items: append([]CartItem{}, l.items...),
		Shops: groupByShop(l.items),
		Count: countQuantities(l.items),
		Total: sumLineTotals(l.items),
	}
}

func countQuantities(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func groupByShop(items []CartItem) []ShopCartGroup {
	groups := make([]ShopCartGroup, 0)
	index := make(map[string]int)
	for _, item := range items {
		shopID := item.Product.ShopID
		idx, ok := index[shopID]
		if !ok {
			idx = len(groups)
			index[shopID] = idx
			groups = append(groups, ShopCartGroup{ShopID: shopID, Items: []CartItem{}})
		}
		groups[idx].Items = append(groups[idx].Items, item)
		groups[idx].Count += item.Quantity
		groups[idx].Subtotal += item.LineTotal()
	}
	return groups
}

// CommitShop 在账本锁内取出店铺子集交给 fn；fn 成功后才从账本移除这些项
func (l *CartLedger) CommitShop(shopID string, fn func(items []CartItem) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	subset := make([]CartItem, 0)
	rest := make([]CartItem, 0, len(l.items))
	for _, item := range l.items {
		if item.Product.ShopID == shopID {
			subset = append(subset, item)
			continue
		}
		rest = append(rest, item)
	}
	if err := fn(append([]CartItem{}, subset...)); err != nil {
		return err
	}
	l.items = rest
	return nil
}

func sumLineTotals(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}
