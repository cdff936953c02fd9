// Package landside talks to the truck gate / weighing / appointment
// subsystem. Types in this package mirror the wire shapes the backend is
// known to emit; normalization into the canonical domain model happens
// elsewhere.
package landside

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HopeyCodeDS/mineralflow/pkg/clients/gateway"
)

// Truck is the wire shape of a truck record. Date fields are left untyped
// because the backend has emitted ISO strings, dd/MM/yyyy strings, epoch
// values and nulls at different times.
type Truck struct {
	ID              string   `json:"id"`
	LicensePlate    string   `json:"licensePlate"`
	Material        string   `json:"material"`
	PlannedArrival  any      `json:"plannedArrival"`
	ActualArrival   any      `json:"actualArrival"`
	Status          string   `json:"status"`
	SellerID        string   `json:"sellerId"`
	SellerName      string   `json:"sellerName"`
	WarehouseNumber *string  `json:"warehouseNumber"`
	GrossWeight     *float64 `json:"grossWeight"`
	TareWeight      *float64 `json:"tareWeight"`
	NetWeight       *float64 `json:"netWeight"`
}

// ArrivalWindow is the wire shape of an appointment's expected window.
type ArrivalWindow struct {
	StartTime any `json:"startTime"`
	EndTime   any `json:"endTime"`
}

// Appointment is the wire shape of an appointment record.
type Appointment struct {
	AppointmentID   string         `json:"appointmentId"`
	LicensePlate    string         `json:"licensePlate"`
	SellerID        string         `json:"sellerId"`
	SellerName      string         `json:"sellerName"`
	RawMaterialName string         `json:"rawMaterialName"`
	ScheduledTime   any            `json:"scheduledTime"`
	ArrivalWindow   *ArrivalWindow `json:"arrivalWindow"`
	Status          string         `json:"status"`
	TruckType       string         `json:"truckType"`
}

// CreateAppointmentRequest is the write-side payload. Dates must already be
// serialized as "dd/MM/yyyy HH:mm"; the backend accepts nothing else.
type CreateAppointmentRequest struct {
	LicensePlate    string `json:"licensePlate" binding:"required"`
	SellerID        string `json:"sellerId" binding:"required"`
	RawMaterialName string `json:"rawMaterialName" binding:"required"`
	ScheduledTime   string `json:"scheduledTime" binding:"required"`
	TruckType       string `json:"truckType"`
}

// OnSiteCount is the wire shape of the on-site truck counter endpoint.
type OnSiteCount struct {
	Count int `json:"count"`
}

// ArrivalCompliance is the wire shape of the arrival compliance endpoint.
type ArrivalCompliance struct {
	OnTime            int     `json:"onTime"`
	Late              int     `json:"late"`
	Total             int     `json:"total"`
	CompliancePercent float64 `json:"compliancePercentage"`
}

// Client exposes the landside subsystem operations.
type Client struct {
	gw *gateway.Client
}

// NewClient wraps a gateway client rooted at the landside base URL.
func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Trucks lists every truck known to the gate system.
func (c *Client) Trucks(ctx context.Context) ([]Truck, error) {
	var out []Truck
	if err := c.gw.Get(ctx, "/trucks", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Truck fetches one truck by id.
func (c *Client) Truck(ctx context.Context, id string) (*Truck, error) {
	out := new(Truck)
	if err := c.gw.Get(ctx, fmt.Sprintf("/trucks/%s", id), out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTruck registers a new truck.
func (c *Client) CreateTruck(ctx context.Context, body any) error {
	return c.gw.Post(ctx, "/trucks", body, nil)
}

// UpdateTruck replaces a truck record.
func (c *Client) UpdateTruck(ctx context.Context, id string, body any) error {
	return c.gw.Put(ctx, fmt.Sprintf("/trucks/%s", id), body, nil)
}

// DeleteTruck removes a truck record.
func (c *Client) DeleteTruck(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/trucks/%s", id))
}

// UpdateTruckStatus patches only the status field.
func (c *Client) UpdateTruckStatus(ctx context.Context, id, status string) error {
	return c.gw.Patch(ctx, fmt.Sprintf("/trucks/%s/status", id), map[string]string{"status": status}, nil)
}

// TruckMovements returns the raw movement history for a truck. The shape is
// passed through untouched; no component depends on its fields.
func (c *Client) TruckMovements(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.gw.Get(ctx, fmt.Sprintf("/trucks/%s/movements", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TrucksOnSiteCount returns how many trucks are currently inside the gate.
func (c *Client) TrucksOnSiteCount(ctx context.Context) (*OnSiteCount, error) {
	out := new(OnSiteCount)
	if err := c.gw.Get(ctx, "/trucks/on-site/count", out); err != nil {
		return nil, err
	}
	return out, nil
}

// ArrivalCompliance returns the gate's arrival punctuality figures.
func (c *Client) ArrivalCompliance(ctx context.Context) (*ArrivalCompliance, error) {
	out := new(ArrivalCompliance)
	if err := c.gw.Get(ctx, "/arrival-compliance", out); err != nil {
		return nil, err
	}
	return out, nil
}

// Appointments lists every appointment.
func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := c.gw.Get(ctx, "/appointments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAppointment books a new truck appointment.
func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) error {
	return c.gw.Post(ctx, "/appointments", req, nil)
}

// UpdateAppointment replaces an appointment.
func (c *Client) UpdateAppointment(ctx context.Context, id string, body any) error {
	return c.gw.Put(ctx, fmt.Sprintf("/appointments/%s", id), body, nil)
}

// DeleteAppointment cancels an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.gw.Delete(ctx, fmt.Sprintf("/appointments/%s", id))
}
