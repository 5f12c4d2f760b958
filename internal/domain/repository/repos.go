package repository

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Variants  VariantRepository
	Users     UserRepository
	Coupons   CouponRepository
	Suppliers SupplierRepository
	Orders    OrderRepository
	Events    OrderStatusEventRepository
	Loyalty   LoyaltyEntryRepository
	Receipts  GoodsReceiptRepository
	Returns   ReturnRequestRepository
}
