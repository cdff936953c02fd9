// Package dashboard derives secondary state from the cached collections:
// status buckets, capacity metrics and the alert feed. Everything here is a
// pure function of its inputs so the same collections always produce the
// same output.
package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
	"github.com/HopeyCodeDS/mineralflow/internal/service/normalize"
)

// capacityAlertThreshold is the fill ratio at which a warehouse makes the
// alert feed; the metrics' "at capacity" bucket starts lower, at 80%.
const capacityAlertThreshold = 0.95

// todayAppointmentsLimit caps the dashboard's today list.
const todayAppointmentsLimit = 5

// Data bundles everything the dashboard view needs.
type Data struct {
	Metrics           models.DashboardMetrics    `json:"metrics"`
	Alerts            []models.Alert             `json:"alerts"`
	Overview          models.AppointmentOverview `json:"appointmentOverview"`
	TodayAppointments []models.Appointment       `json:"todayAppointments"`
}

// Compute derives metrics, the alert feed and the appointment views from the
// normalized collections. now anchors the today selection; everything else
// ignores it.
func Compute(
	trucks []models.Truck,
	warehouses []models.Warehouse,
	purchaseOrders []models.PurchaseOrder,
	shippingOrders []models.ShippingOrder,
	appointments []models.Appointment,
	now time.Time,
) Data {
	return Data{
		Metrics:           Metrics(trucks, warehouses, purchaseOrders, shippingOrders),
		Alerts:            Alerts(trucks, warehouses, shippingOrders),
		Overview:          Overview(appointments),
		TodayAppointments: TodayAppointments(appointments, now),
	}
}

// Metrics computes the dashboard counters.
func Metrics(
	trucks []models.Truck,
	warehouses []models.Warehouse,
	purchaseOrders []models.PurchaseOrder,
	shippingOrders []models.ShippingOrder,
) models.DashboardMetrics {
	m := models.DashboardMetrics{}

	for _, t := range trucks {
		switch {
		case t.Status == models.TruckAtGate:
			m.TrucksAtGate++
		case t.Status == models.TruckAtBridge:
			m.TrucksAtBridge++
		case t.Status == models.TruckAtWarehouse:
			m.TrucksAtWarehouse++
		case t.Status == models.TruckScheduled:
			m.ScheduledArrivals++
		}
		if t.Status.OnSite() {
			m.TrucksOnSite++
		}
	}

	var totalCapacity, usedCapacity float64
	for _, w := range warehouses {
		totalCapacity += w.MaxCapacity
		usedCapacity += w.CurrentStock
		if w.AtHighCapacity() {
			m.WarehousesAtCapacity++
		}
		if w.OverCapacity() {
			m.WarehousesOver++
		}
	}
	if totalCapacity > 0 {
		m.FreeCapacityPercent = int(math.Round((totalCapacity - usedCapacity) / totalCapacity * 100))
	}

	for _, po := range purchaseOrders {
		switch po.Status {
		case models.PurchaseOrderOutstanding:
			m.OutstandingPOs++
		case models.PurchaseOrderFulfilled:
			m.FulfilledPOs++
		}
		m.TotalCommission += normalize.CommissionFor(po)
	}

	for _, so := range shippingOrders {
		if so.Status.InPort() {
			m.ShipsInPort++
		}
		if so.Status == models.ShippingOrderValidated && !so.InspectionCompleted {
			m.PendingInspections++
		}
		if so.Status == models.ShippingOrderBunkering && !so.BunkeringCompleted {
			m.PendingBunkering++
		}
	}

	return m
}

// Alerts builds the ranked alert feed: at most one alert per category, in a
// fixed category order, with a single "all systems operating normally"
// entry when nothing else fires.
func Alerts(trucks []models.Truck, warehouses []models.Warehouse, shippingOrders []models.ShippingOrder) []models.Alert {
	var alerts []models.Alert

	for _, w := range warehouses {
		if w.CapacityRatio() >= capacityAlertThreshold {
			alerts = append(alerts, models.Alert{
				Category: models.AlertCapacityWarning,
				Severity: models.SeverityWarning,
				Message:  fmt.Sprintf("Warehouse %s at %d%% capacity", w.Number, int(math.Round(w.CapacityRatio()*100))),
				Location: fmt.Sprintf("Warehouse %s", w.Number),
			})
			break
		}
	}

	for _, so := range shippingOrders {
		if so.Status == models.ShippingOrderDeparted && so.ActualDepartureDate != nil {
			alerts = append(alerts, models.Alert{
				Category: models.AlertVesselDeparted,
				Severity: models.SeveritySuccess,
				Message:  fmt.Sprintf("Vessel %s has departed successfully", so.VesselNumber),
				Location: "Port",
			})
			break
		}
	}

	if t, ok := firstTruckWithStatus(trucks, models.TruckAtBridge); ok {
		alerts = append(alerts, models.Alert{
			Category: models.AlertTruckAtBridge,
			Severity: models.SeverityInfo,
			Message:  fmt.Sprintf("Truck %s currently at Weighing Bridge", t.LicensePlate),
			Location: "Weighing Bridge",
		})
	}

	if t, ok := firstTruckWithStatus(trucks, models.TruckAtWarehouse); ok {
		warehouse := t.WarehouseNumber
		if warehouse == "" {
			warehouse = "Unknown"
		}
		alerts = append(alerts, models.Alert{
			Category: models.AlertTruckAtWarehouse,
			Severity: models.SeveritySuccess,
			Message:  fmt.Sprintf("Truck %s unloading at Warehouse %s", t.LicensePlate, warehouse),
			Location: fmt.Sprintf("Warehouse %s", warehouse),
		})
	}

	if t, ok := firstTruckWithStatus(trucks, models.TruckAtGate); ok {
		alerts = append(alerts, models.Alert{
			Category: models.AlertTruckAtGate,
			Severity: models.SeverityWarning,
			Message:  fmt.Sprintf("Truck %s waiting at Gate for processing", t.LicensePlate),
			Location: "Gate",
		})
	}

	if len(alerts) == 0 {
		alerts = append(alerts, models.Alert{
			Category: models.AlertAllNormal,
			Severity: models.SeverityInfo,
			Message:  "All systems operating normally",
		})
	}

	return alerts
}

// Overview partitions appointments into dashboard buckets. Unrecognized
// statuses land in the in-progress bucket via the InProgress rule rather
// than being misfiled into a terminal one.
func Overview(appointments []models.Appointment) models.AppointmentOverview {
	o := models.AppointmentOverview{Total: len(appointments)}
	for _, apt := range appointments {
		switch apt.Status {
		case models.AppointmentScheduled:
			o.Scheduled++
		case models.AppointmentDeparted:
			o.Departed++
		case models.AppointmentCancelled:
			o.Cancelled++
		default:
			o.InProgress++
		}
	}
	return o
}

// TodayAppointments selects appointments scheduled on the same calendar day
// as now, in input order, capped at five entries.
func TodayAppointments(appointments []models.Appointment, now time.Time) []models.Appointment {
	y, m, d := now.Date()
	today := make([]models.Appointment, 0, todayAppointmentsLimit)
	for _, apt := range appointments {
		ay, am, ad := apt.ScheduledTime.Date()
		if ay != y || am != m || ad != d {
			continue
		}
		today = append(today, apt)
		if len(today) == todayAppointmentsLimit {
			break
		}
	}
	return today
}

func firstTruckWithStatus(trucks []models.Truck, status models.TruckStatus) (models.Truck, bool) {
	for _, t := range trucks {
		if t.Status == status {
			return t, true
		}
	}
	return models.Truck{}, false
}
