// Package waterside talks to the vessel / shipping-order subsystem.
package waterside

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
)

// ShippingOrder is the wire shape of a vessel shipping order.
type ShippingOrder struct {
	ID                     string `json:"id"`
	SONumber               string `json:"soNumber"`
	VesselNumber           string `json:"vesselNumber"`
	POReference            string `json:"poReference"`
	CustomerNumber         string `json:"customerNumber"`
	EstimatedArrivalDate   any    `json:"estimatedArrivalDate"`
	EstimatedDepartureDate any    `json:"estimatedDepartureDate"`
	ActualArrivalDate      any    `json:"actualArrivalDate"`
	ActualDepartureDate    any    `json:"actualDepartureDate"`
	Status                 string `json:"status"`
	InspectionCompleted    bool   `json:"inspectionCompleted"`
	BunkeringCompleted     bool   `json:"bunkeringCompleted"`
	LoadingCompleted       bool   `json:"loadingCompleted"`
	ForemanSignature       string `json:"foremanSignature"`
	ValidationDate         any    `json:"validationDate"`
}

// SubmitShippingOrderRequest is the write-side payload for a new shipping
// order. Dates must already be serialized as "dd/MM/yyyy HH:mm".
type SubmitShippingOrderRequest struct {
	SONumber               string `json:"soNumber" binding:"required"`
	VesselNumber           string `json:"vesselNumber" binding:"required"`
	POReference            string `json:"poReference" binding:"required"`
	CustomerNumber         string `json:"customerNumber" binding:"required"`
	EstimatedArrivalDate   string `json:"estimatedArrivalDate" binding:"required"`
	EstimatedDepartureDate string `json:"estimatedDepartureDate" binding:"required"`
}

// Client exposes the waterside subsystem operations.
type Client struct {
	gw *gateway.Client
}

// NewClient wraps a gateway client rooted at the waterside base URL.
func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// ShippingOrders lists every shipping order.
func (c *Client) ShippingOrders(ctx context.Context) ([]ShippingOrder, error) {
	var out []ShippingOrder
	if err := c.gw.Get(ctx, "/shipping-orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShippingOrder fetches one shipping order by id.
func (c *Client) ShippingOrder(ctx context.Context, id string) (*ShippingOrder, error) {
	out := new(ShippingOrder)
	if err := c.gw.Get(ctx, fmt.Sprintf("/shipping-orders/%s", id), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit registers a new shipping order.
func (c *Client) Submit(ctx context.Context, req SubmitShippingOrderRequest) error {
	return c.gw.Post(ctx, "/shipping-orders", req, nil)
}

// UnmatchedShippingOrders lists orders awaiting a foreman match.
func (c *Client) UnmatchedShippingOrders(ctx context.Context) ([]ShippingOrder, error) {
	var out []ShippingOrder
	if err := c.gw.Get(ctx, "/foreman/unmatched-shipping-orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ShipmentArrivals lists vessels that have physically arrived.
func (c *Client) ShipmentArrivals(ctx context.Context) ([]ShippingOrder, error) {
	var out []ShippingOrder
	if err := c.gw.Get(ctx, "/foreman/shipment-arrivals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatchShippingOrder links a shipping order to its purchase order.
func (c *Client) MatchShippingOrder(ctx context.Context, shippingOrderID, foremanSignature string) error {
	body := map[string]string{"shippingOrderId": shippingOrderID, "foremanSignature": foremanSignature}
	return c.gw.Post(ctx, "/foreman/match-shipping-order", body, nil)
}

// OutstandingInspections lists vessels still awaiting inspection.
func (c *Client) OutstandingInspections(ctx context.Context) ([]ShippingOrder, error) {
	var out []ShippingOrder
	if err := c.gw.Get(ctx, "/inspections/outstanding", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteInspection signs off an inspection.
func (c *Client) CompleteInspection(ctx context.Context, shippingOrderID, inspectorSignature string) error {
	body := map[string]string{"shippingOrderId": shippingOrderID, "inspectorSignature": inspectorSignature}
	return c.gw.Post(ctx, "/inspections/complete", body, nil)
}

// OutstandingBunkering lists vessels still awaiting bunkering.
func (c *Client) OutstandingBunkering(ctx context.Context) ([]ShippingOrder, error) {
	var out []ShippingOrder
	if err := c.gw.Get(ctx, "/bunkering/outstanding", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteBunkering signs off a bunkering operation.
func (c *Client) CompleteBunkering(ctx context.Context, shippingOrderID, officerSignature string) error {
	body := map[string]string{"shippingOrderId": shippingOrderID, "bunkeringOfficerSignature": officerSignature}
	return c.gw.Post(ctx, "/bunkering/complete", body, nil)
}

// VesselOperations returns the operations overview for one vessel, raw.
func (c *Client) VesselOperations(ctx context.Context, vesselNumber string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.gw.Get(ctx, fmt.Sprintf("/captain/operations/%s", vesselNumber), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OperationsOverview returns the operations overview for all vessels, raw.
func (c *Client) OperationsOverview(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.gw.Get(ctx, "/captain/operations-overview", &out); err != nil {
		return nil, err
	}
	return out, nil
}
