package models

import "time"

// AppointmentStatus follows scheduled → arrived → departed, with cancelled
// reachable only from scheduled (a truck pulled into the garage hold).
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentArrived   AppointmentStatus = "arrived"
	AppointmentDeparted  AppointmentStatus = "departed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ArrivalWindow is the interval within which a truck is expected on site.
// The window is always exactly one hour wide.
type ArrivalWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Appointment is the canonical post-normalization appointment record.
type Appointment struct {
	ID              string            `json:"id"`
	TruckID         string            `json:"truckId"`
	LicensePlate    string            `json:"licensePlate"`
	SellerID        string            `json:"sellerId"`
	SellerName      string            `json:"sellerName"`
	Material        MaterialType      `json:"material"`
	ScheduledTime   time.Time         `json:"scheduledTime"`
	ArrivalWindow   ArrivalWindow     `json:"arrivalWindow"`
	Status          AppointmentStatus `json:"status"`
	WarehouseNumber string            `json:"warehouseNumber"`
}

// AppointmentStatusForTruck derives the appointment bucket from the paired
// truck's position on site.
func AppointmentStatusForTruck(status TruckStatus) AppointmentStatus {
	switch status {
	case TruckExited:
		return AppointmentDeparted
	case TruckAtGate, TruckAtBridge, TruckAtWarehouse:
		return AppointmentArrived
	case TruckAtGarage:
		return AppointmentCancelled
	default:
		return AppointmentScheduled
	}
}

// InProgress reports whether the appointment counts as active for dashboard
// purposes: anything that is neither scheduled, cancelled nor departed.
func (s AppointmentStatus) InProgress() bool {
	return s != AppointmentScheduled && s != AppointmentCancelled && s != AppointmentDeparted
}
