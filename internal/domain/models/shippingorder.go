package models

import "time"

// ShippingOrderStatus follows arrived → validated → bunkering →
// ready_for_loading → departed, with inspecting as a sub-phase of the
// arrived → validated transition.
type ShippingOrderStatus string

const (
	ShippingOrderArrived         ShippingOrderStatus = "arrived"
	ShippingOrderInspecting      ShippingOrderStatus = "inspecting"
	ShippingOrderValidated       ShippingOrderStatus = "validated"
	ShippingOrderBunkering       ShippingOrderStatus = "bunkering"
	ShippingOrderReadyForLoading ShippingOrderStatus = "ready_for_loading"
	ShippingOrderDeparted        ShippingOrderStatus = "departed"
)

// ShippingOrder is the canonical post-normalization vessel order record.
// InspectionCompleted and BunkeringCompleted are independent monotonic
// flags: once true they are never reset by this layer.
type ShippingOrder struct {
	ID                     string              `json:"id"`
	SONumber               string              `json:"soNumber"`
	VesselNumber           string              `json:"vesselNumber"`
	POReference            string              `json:"poReference"`
	CustomerNumber         string              `json:"customerNumber"`
	EstimatedArrivalDate   time.Time           `json:"estimatedArrivalDate"`
	EstimatedDepartureDate time.Time           `json:"estimatedDepartureDate"`
	ActualArrivalDate      *time.Time          `json:"actualArrivalDate,omitempty"`
	ActualDepartureDate    *time.Time          `json:"actualDepartureDate,omitempty"`
	Status                 ShippingOrderStatus `json:"status"`
	InspectionCompleted    bool                `json:"inspectionCompleted"`
	BunkeringCompleted     bool                `json:"bunkeringCompleted"`
	LoadingCompleted       bool                `json:"loadingCompleted"`
	ForemanSignature       string              `json:"foremanSignature,omitempty"`
	ValidationDate         *time.Time          `json:"validationDate,omitempty"`
}

// InPort reports whether the vessel is currently berthed.
func (s ShippingOrderStatus) InPort() bool {
	switch s {
	case ShippingOrderArrived, ShippingOrderInspecting, ShippingOrderValidated, ShippingOrderBunkering, ShippingOrderReadyForLoading:
		return true
	}
	return false
}
