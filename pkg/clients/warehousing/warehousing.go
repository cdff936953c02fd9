// Package warehousing talks to the warehouse inventory subsystem.
package warehousing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
)

// PayloadRecord is the wire shape of one logged delivery.
type PayloadRecord struct {
	PdtID           string  `json:"pdtId"`
	DeliveryTime    any     `json:"deliveryTime"`
	PayloadWeight   float64 `json:"payloadWeight"`
	RawMaterialName string  `json:"rawMaterialName"`
	SellerID        string  `json:"sellerId"`
}

// Warehouse is the wire shape of a warehouse record.
type Warehouse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	SellerID     string          `json:"sellerId"`
	SellerName   string          `json:"sellerName"`
	Material     *string         `json:"material"`
	CurrentStock float64         `json:"currentStock"`
	MaxCapacity  float64         `json:"maxCapacity"`
	Payloads     []PayloadRecord `json:"payloads"`
}

// CreateWarehouseRequest is the write-side payload for a new warehouse.
type CreateWarehouseRequest struct {
	Number      string  `json:"number" binding:"required"`
	SellerID    string  `json:"sellerId" binding:"required"`
	SellerName  string  `json:"sellerName"`
	MaxCapacity float64 `json:"maxCapacity" binding:"required,gt=0"`
}

// MaterialRequest adds stock of one material to a warehouse.
type MaterialRequest struct {
	Material string  `json:"material" binding:"required"`
	Weight   float64 `json:"weight" binding:"required,gt=0"`
	SellerID string  `json:"sellerId" binding:"required"`
}

// Client exposes the warehousing subsystem operations.
type Client struct {
	gw *gateway.Client
}

// NewClient wraps a gateway client rooted at the warehousing base URL.
func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Overview lists every warehouse with its payload log.
func (c *Client) Overview(ctx context.Context) ([]Warehouse, error) {
	var out []Warehouse
	if err := c.gw.Get(ctx, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Warehouse fetches one warehouse by id.
func (c *Client) Warehouse(ctx context.Context, id string) (*Warehouse, error) {
	out := new(Warehouse)
	if err := c.gw.Get(ctx, fmt.Sprintf("/%s", id), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers a new warehouse.
func (c *Client) Create(ctx context.Context, req CreateWarehouseRequest) error {
	return c.gw.Post(ctx, "", req, nil)
}

// Update replaces a warehouse record.
func (c *Client) Update(ctx context.Context, id string, body any) error {
	return c.gw.Put(ctx, fmt.Sprintf("/%s", id), body, nil)
}

// Delete removes a warehouse.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/%s", id))
}

// AddMaterial books material into a warehouse.
func (c *Client) AddMaterial(ctx context.Context, warehouseID string, req MaterialRequest) error {
	return c.gw.Post(ctx, fmt.Sprintf("/%s/materials", warehouseID), req, nil)
}

// RemoveMaterial books material out of a warehouse.
func (c *Client) RemoveMaterial(ctx context.Context, warehouseID, materialID string) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/%s/materials/%s", warehouseID, materialID))
}

// Stats returns the subsystem's own aggregate figures, passed through raw.
func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.gw.Get(ctx, "/stats", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CapacityAlerts returns the subsystem's own alert list, passed through raw.
func (c *Client) CapacityAlerts(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.gw.Get(ctx, "/capacity-alerts", &out); err != nil {
		return nil, err
	}
	return out, nil
}
