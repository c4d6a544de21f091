package constants

// 商品品类常量
const (
	CategoryBangles   = "bangles"
	CategoryEarrings  = "earrings"
	CategoryChains    = "chains"
	CategoryRings     = "rings"
	CategoryAnklets   = "anklets"
	CategoryBracelets = "bracelets"
	CategoryOther     = "other"
)

// 金属类型常量
const (
	MetalGold      = "gold"
	MetalSilver    = "silver"
	MetalPlatinum  = "platinum"
	MetalImitation = "imitation"
)

// 纯度常量
const (
	Purity18K = "18K"
	Purity22K = "22K"
	Purity24K = "24K"
	Purity925 = "925"
	PurityNA  = "NA"
)

// 筛选哨兵值
const (
	FilterAll = "all"
)

// 到店预约状态常量
const (
	VisitRequestStatusCreated   = "created"
	VisitRequestStatusConfirmed = "confirmed"
	VisitRequestStatusCompleted = "completed"
	VisitRequestStatusExpired   = "expired"
	VisitRequestStatusCancelled = "cancelled"
)

// 库存状态常量
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// 身份提供方常量
const (
	AuthProviderSimulated = "simulated"
	AuthProviderDirectory = "directory"
)

// 模拟身份常量
const (
	SimulatedUserID       = "user-1"
	SimulatedCity         = "Hyderabad"
	SimulatedShopID       = "shop-1"
	SimulatedShopkeeper   = "Shop Owner"
	SimulatedCustomerName = "Customer"
)

// 货币常量
const (
	CurrencyINR = "INR"
)

// 异步任务常量
const (
	TaskVisitHoldExpire = "visit_request:hold_expire"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 事件类型常量
const (
	EventVisitRequestCreated       = "visit_request.created"
	EventVisitRequestStatusChanged = "visit_request.status_changed"
)

// 上下文键常量
const (
	ContextKeySession   = "session"
	ContextKeySessionID = "session_id"
	ContextKeyRole      = "session_role"
)
