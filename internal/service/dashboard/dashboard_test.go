package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
)

func TestMetricsCountsTruckBuckets(t *testing.T) {
	trucks := []models.Truck{
		{Status: models.TruckAtGate},
		{Status: models.TruckAtGate},
		{Status: models.TruckAtBridge},
		{Status: models.TruckAtWarehouse},
		{Status: models.TruckScheduled},
		{Status: models.TruckExited},
		{Status: models.TruckAtGarage},
	}

	m := Metrics(trucks, nil, nil, nil)
	assert.Equal(t, 2, m.TrucksAtGate)
	assert.Equal(t, 1, m.TrucksAtBridge)
	assert.Equal(t, 1, m.TrucksAtWarehouse)
	assert.Equal(t, 4, m.TrucksOnSite)
	assert.Equal(t, 1, m.ScheduledArrivals)
}

func TestMetricsCapacity(t *testing.T) {
	warehouses := []models.Warehouse{
		{CurrentStock: 400000, MaxCapacity: 500000},
		{CurrentStock: 100000, MaxCapacity: 500000},
		{CurrentStock: 520000, MaxCapacity: 500000},
	}

	m := Metrics(nil, warehouses, nil, nil)
	// Free: (500k-400k)+(500k-100k)+(500k-520k) over 1.5M.
	assert.Equal(t, 32, m.FreeCapacityPercent)
	assert.Equal(t, 2, m.WarehousesAtCapacity)
	assert.Equal(t, 1, m.WarehousesOver)
}

func TestMetricsOrdersAndCommission(t *testing.T) {
	pos := []models.PurchaseOrder{
		{Status: models.PurchaseOrderOutstanding, TotalValue: 10000},
		{Status: models.PurchaseOrderFulfilled, TotalValue: 20000},
		{Status: models.PurchaseOrderCancelled, TotalValue: 5000},
	}

	m := Metrics(nil, nil, pos, nil)
	assert.Equal(t, 1, m.OutstandingPOs)
	assert.Equal(t, 1, m.FulfilledPOs)
	assert.InDelta(t, 350.0, m.TotalCommission, 1e-9)
}

func TestMetricsVesselOperations(t *testing.T) {
	sos := []models.ShippingOrder{
		{Status: models.ShippingOrderArrived},
		{Status: models.ShippingOrderValidated},
		{Status: models.ShippingOrderValidated, InspectionCompleted: true},
		{Status: models.ShippingOrderBunkering},
		{Status: models.ShippingOrderDeparted},
	}

	m := Metrics(nil, nil, nil, sos)
	assert.Equal(t, 4, m.ShipsInPort)
	assert.Equal(t, 1, m.PendingInspections)
	assert.Equal(t, 1, m.PendingBunkering)
}

func TestAlertsHighCapacityFiresOnce(t *testing.T) {
	warehouses := []models.Warehouse{
		{Number: "W03", CurrentStock: 480000, MaxCapacity: 500000},
		{Number: "W07", CurrentStock: 490000, MaxCapacity: 500000},
	}

	alerts := Alerts(nil, warehouses, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertCapacityWarning, alerts[0].Category)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "W03")
	assert.Contains(t, alerts[0].Message, "96%")
}

func TestAlertsFixedCategoryOrder(t *testing.T) {
	departure := time.Now()
	trucks := []models.Truck{
		{LicensePlate: "KDG001", Status: models.TruckAtGate},
		{LicensePlate: "KDG002", Status: models.TruckAtBridge},
		{LicensePlate: "KDG003", Status: models.TruckAtWarehouse, WarehouseNumber: "W04"},
	}
	warehouses := []models.Warehouse{
		{Number: "W01", CurrentStock: 495000, MaxCapacity: 500000},
	}
	sos := []models.ShippingOrder{
		{VesselNumber: "VESSEL-009", Status: models.ShippingOrderDeparted, ActualDepartureDate: &departure},
	}

	alerts := Alerts(trucks, warehouses, sos)
	require.Len(t, alerts, 5)
	assert.Equal(t, models.AlertCapacityWarning, alerts[0].Category)
	assert.Equal(t, models.AlertVesselDeparted, alerts[1].Category)
	assert.Equal(t, models.AlertTruckAtBridge, alerts[2].Category)
	assert.Equal(t, models.AlertTruckAtWarehouse, alerts[3].Category)
	assert.Equal(t, models.AlertTruckAtGate, alerts[4].Category)
}

func TestAlertsVesselDepartedNeedsActualDate(t *testing.T) {
	sos := []models.ShippingOrder{
		{VesselNumber: "VESSEL-001", Status: models.ShippingOrderDeparted},
	}

	alerts := Alerts(nil, nil, sos)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertAllNormal, alerts[0].Category)
}

func TestAlertsAllNormalWhenQuiet(t *testing.T) {
	alerts := Alerts(nil, nil, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.AlertAllNormal, alerts[0].Category)
	assert.Equal(t, models.SeverityInfo, alerts[0].Severity)
	assert.Equal(t, "All systems operating normally", alerts[0].Message)
}

func TestAlertsDeterministic(t *testing.T) {
	trucks := []models.Truck{
		{LicensePlate: "KDG010", Status: models.TruckAtGate},
		{LicensePlate: "KDG011", Status: models.TruckAtGate},
	}

	first := Alerts(trucks, nil, nil)
	second := Alerts(trucks, nil, nil)
	require.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Contains(t, first[0].Message, "KDG010")
}

func TestTodayAppointmentsFiltersAndCaps(t *testing.T) {
	now := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	appointments := make([]models.Appointment, 0, 8)
	for i := 0; i < 7; i++ {
		appointments = append(appointments, models.Appointment{
			ID:            string(rune('a' + i)),
			ScheduledTime: now.Add(time.Duration(i) * time.Hour),
		})
	}
	appointments = append(appointments, models.Appointment{
		ID:            "tomorrow",
		ScheduledTime: now.Add(24 * time.Hour),
	})

	today := TodayAppointments(appointments, now)
	require.Len(t, today, 5)
	for _, apt := range today {
		assert.NotEqual(t, "tomorrow", apt.ID)
	}
	assert.Equal(t, "a", today[0].ID)
}

func TestOverviewPartition(t *testing.T) {
	appointments := []models.Appointment{
		{Status: models.AppointmentScheduled},
		{Status: models.AppointmentArrived},
		{Status: models.AppointmentStatus("rescheduled")},
		{Status: models.AppointmentDeparted},
		{Status: models.AppointmentCancelled},
	}

	o := Overview(appointments)
	assert.Equal(t, 5, o.Total)
	assert.Equal(t, 1, o.Scheduled)
	assert.Equal(t, 2, o.InProgress)
	assert.Equal(t, 1, o.Departed)
	assert.Equal(t, 1, o.Cancelled)
}
