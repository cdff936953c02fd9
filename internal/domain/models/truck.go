package models

import "time"

// TruckStatus tracks a truck through the site:
// scheduled → GATE → WEIGHING_BRIDGE → WAREHOUSE → EXIT, with a garage hold
// reachable from scheduled. Transitions are backend-driven; this layer only
// reads the current value. An unrecognized token from the backend is kept
// as-is so it stays visible instead of being misclassified.
type TruckStatus string

const (
	TruckScheduled   TruckStatus = "scheduled"
	TruckAtGate      TruckStatus = "GATE"
	TruckAtBridge    TruckStatus = "WEIGHING_BRIDGE"
	TruckAtWarehouse TruckStatus = "WAREHOUSE"
	TruckExited      TruckStatus = "EXIT"
	TruckAtGarage    TruckStatus = "At the Truck Garage"
)

// Truck is the canonical post-normalization truck record.
type Truck struct {
	ID              string       `json:"id"`
	LicensePlate    string       `json:"licensePlate"`
	Material        MaterialType `json:"material"`
	PlannedArrival  time.Time    `json:"plannedArrival"`
	ActualArrival   *time.Time   `json:"actualArrival,omitempty"`
	Status          TruckStatus  `json:"status"`
	SellerID        string       `json:"sellerId"`
	SellerName      string       `json:"sellerName"`
	WarehouseNumber string       `json:"warehouseNumber,omitempty"`
	GrossWeight     *float64     `json:"grossWeight,omitempty"`
	TareWeight      *float64     `json:"tareWeight,omitempty"`
	NetWeight       *float64     `json:"netWeight,omitempty"`
}

// OnSite reports whether the truck is physically inside the facility.
func (s TruckStatus) OnSite() bool {
	switch s {
	case TruckAtGate, TruckAtBridge, TruckAtWarehouse:
		return true
	}
	return false
}
