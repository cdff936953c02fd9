package models

import "time"

// PurchaseOrderStatus has terminal-only transitions: outstanding → fulfilled
// or outstanding → cancelled.
type PurchaseOrderStatus string

const (
	PurchaseOrderOutstanding PurchaseOrderStatus = "outstanding"
	PurchaseOrderFulfilled   PurchaseOrderStatus = "fulfilled"
	PurchaseOrderCancelled   PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderItem is one line of a purchase order. TotalPrice is always
// recomputed from Quantity × AgreedPricePerTon at normalization time, never
// trusted from the backend.
type PurchaseOrderItem struct {
	Material          MaterialType `json:"material"`
	Quantity          float64      `json:"quantity"`
	AgreedPricePerTon float64      `json:"agreedPricePerTon"`
	TotalPrice        float64      `json:"totalPrice"`
}

// PurchaseOrder is the canonical post-normalization purchase order record.
type PurchaseOrder struct {
	ID                    string              `json:"id"`
	PONumber              string              `json:"poNumber"`
	CustomerID            string              `json:"customerId"`
	CustomerName          string              `json:"customerName"`
	SellerID              string              `json:"sellerId"`
	SellerName            string              `json:"sellerName"`
	OrderDate             time.Time           `json:"orderDate"`
	Status                PurchaseOrderStatus `json:"status"`
	Items                 []PurchaseOrderItem `json:"items"`
	TotalValue            float64             `json:"totalValue"`
	EstimatedDeliveryDate *time.Time          `json:"estimatedDeliveryDate,omitempty"`
}

// Terminal reports whether no further status transitions are possible.
func (s PurchaseOrderStatus) Terminal() bool {
	return s == PurchaseOrderFulfilled || s == PurchaseOrderCancelled
}
