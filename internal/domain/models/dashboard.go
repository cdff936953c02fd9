package models

// DashboardMetrics is derived state, recomputed on every change to the four
// underlying collections. It is never persisted.
type DashboardMetrics struct {
	TrucksOnSite         int     `json:"trucksOnSite"`
	TrucksAtGate         int     `json:"trucksAtGate"`
	TrucksAtBridge       int     `json:"trucksAtBridge"`
	TrucksAtWarehouse    int     `json:"trucksAtWarehouse"`
	ScheduledArrivals    int     `json:"scheduledArrivals"`
	FreeCapacityPercent  int     `json:"freeCapacityPercent"`
	WarehousesAtCapacity int     `json:"warehousesAtCapacity"`
	WarehousesOver       int     `json:"warehousesOverCapacity"`
	OutstandingPOs       int     `json:"outstandingPOs"`
	FulfilledPOs         int     `json:"fulfilledPOs"`
	TotalCommission      float64 `json:"totalCommission"`
	ShipsInPort          int     `json:"shipsInPort"`
	PendingInspections   int     `json:"pendingInspections"`
	PendingBunkering     int     `json:"pendingBunkering"`
}

// AlertCategory identifies the condition that raised an alert. The feed
// contains at most one alert per category, ordered by category.
type AlertCategory string

const (
	AlertCapacityWarning  AlertCategory = "capacity_warning"
	AlertVesselDeparted   AlertCategory = "vessel_departed"
	AlertTruckAtBridge    AlertCategory = "truck_at_bridge"
	AlertTruckAtWarehouse AlertCategory = "truck_at_warehouse"
	AlertTruckAtGate      AlertCategory = "truck_at_gate"
	AlertAllNormal        AlertCategory = "all_normal"
)

// AlertSeverity classifies an alert for display purposes.
type AlertSeverity string

const (
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
	SeveritySuccess AlertSeverity = "success"
)

// Alert is one entry of the derived alert feed.
type Alert struct {
	Category AlertCategory `json:"category"`
	Severity AlertSeverity `json:"severity"`
	Message  string        `json:"message"`
	Location string        `json:"location,omitempty"`
}

// AppointmentOverview partitions appointments into dashboard buckets.
type AppointmentOverview struct {
	Total      int `json:"total"`
	Scheduled  int `json:"scheduled"`
	InProgress int `json:"inProgress"`
	Departed   int `json:"departed"`
	Cancelled  int `json:"cancelled"`
}
