// Package invoicing talks to the purchase-order subsystem.
package invoicing

import (
	"context"

	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
)

// OrderLine is the wire shape of one purchase-order line. LineTotal is
// decoded but never trusted; totals are recomputed during normalization.
type OrderLine struct {
	RawMaterialName string  `json:"rawMaterialName"`
	AmountInTons    float64 `json:"amountInTons"`
	PricePerTon     float64 `json:"pricePerTon"`
	LineTotal       float64 `json:"lineTotal"`
}

// PurchaseOrder is the wire shape of a purchase-order record. Status arrives
// as PENDING, FULFILLED or CANCELLED in whatever casing the backend felt
// like that day.
type PurchaseOrder struct {
	PurchaseOrderID     string      `json:"purchaseOrderId"`
	PurchaseOrderNumber string      `json:"purchaseOrderNumber"`
	CustomerNumber      string      `json:"customerNumber"`
	CustomerName        string      `json:"customerName"`
	SellerID            string      `json:"sellerId"`
	SellerName          string      `json:"sellerName"`
	OrderDate           any         `json:"orderDate"`
	Status              string      `json:"status"`
	TotalValue          float64     `json:"totalValue"`
	OrderLines          []OrderLine `json:"orderLines"`
}

// CreateOrderLineRequest is one line of a new purchase order.
type CreateOrderLineRequest struct {
	LineNumber      int     `json:"lineNumber" binding:"required"`
	RawMaterialName string  `json:"rawMaterialName" binding:"required"`
	AmountInTons    float64 `json:"amountInTons" binding:"required,gt=0"`
	PricePerTon     float64 `json:"pricePerTon" binding:"required,gt=0"`
}

// CreatePurchaseOrderRequest is the write-side payload for a new order.
type CreatePurchaseOrderRequest struct {
	PurchaseOrderNumber string                   `json:"purchaseOrderNumber" binding:"required"`
	CustomerNumber      string                   `json:"customerNumber" binding:"required"`
	CustomerName        string                   `json:"customerName" binding:"required"`
	SellerID            string                   `json:"sellerId" binding:"required"`
	SellerName          string                   `json:"sellerName"`
	OrderDate           string                   `json:"orderDate" binding:"required"`
	OrderLines          []CreateOrderLineRequest `json:"orderLines" binding:"required,min=1,dive"`
}

// Client exposes the invoicing subsystem operations.
type Client struct {
	gw *gateway.Client
}

// NewClient wraps a gateway client rooted at the invoicing base URL.
func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// PurchaseOrders lists every purchase order.
func (c *Client) PurchaseOrders(ctx context.Context) ([]PurchaseOrder, error) {
	var out []PurchaseOrder
	if err := c.gw.Get(ctx, "/purchase-orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePurchaseOrder submits a new purchase order and returns the created
// wire record.
func (c *Client) CreatePurchaseOrder(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrder, error) {
	out := new(PurchaseOrder)
	if err := c.gw.Post(ctx, "/purchase-orders", req, out); err != nil {
		return nil, err
	}
	return out, nil
}
