package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/invoicing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/landside"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/warehousing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/waterside"
)

func TestParseTimeFormats(t *testing.T) {
	want := time.Date(2025, time.January, 15, 8, 30, 0, 0, time.Local)

	cases := []any{
		"15/01/2025 08:30",
		"2025-01-15T08:30:00",
		"2025-01-15 08:30:00",
		want,
	}
	for _, v := range cases {
		got, ok := ParseTime(v)
		require.True(t, ok, "value %v", v)
		assert.True(t, want.Equal(got), "value %v parsed to %v", v, got)
	}

	epoch := time.Date(2025, time.January, 15, 8, 30, 0, 0, time.UTC)
	got, ok := ParseTime(float64(epoch.UnixMilli()))
	require.True(t, ok)
	assert.True(t, epoch.Equal(got))
}

func TestParseTimeRejectsUnusable(t *testing.T) {
	for _, v := range []any{nil, "", "not a date", true} {
		_, ok := ParseTime(v)
		assert.False(t, ok, "value %v", v)
	}
}

func TestFormatWireTimeRoundTrip(t *testing.T) {
	in := time.Date(2025, time.March, 2, 23, 5, 0, 0, time.Local)
	got, ok := ParseTime(FormatWireTime(in))
	require.True(t, ok)
	assert.True(t, in.Equal(got))
}

func TestTruckNetWeightRecomputed(t *testing.T) {
	gross, tare := 38000.0, 6500.0
	bogus := 99999.0
	out := Truck(landside.Truck{
		ID:           "t-1",
		LicensePlate: "KDG001",
		Material:     "Iron_Ore",
		Status:       "WEIGHING_BRIDGE",
		GrossWeight:  &gross,
		TareWeight:   &tare,
		NetWeight:    &bogus,
	})

	require.NotNil(t, out.NetWeight)
	assert.InDelta(t, 31500.0, *out.NetWeight, 1e-9)
	assert.Equal(t, models.MaterialIronOre, out.Material)
	assert.Equal(t, models.TruckAtBridge, out.Status)
}

func TestTruckPartialWeights(t *testing.T) {
	gross := 38000.0
	out := Truck(landside.Truck{ID: "t-2", GrossWeight: &gross})
	assert.Nil(t, out.NetWeight)
}

func TestAppointmentScheduledFallsBackToWindowStart(t *testing.T) {
	out := Appointment(landside.Appointment{
		AppointmentID: "a-1",
		Status:        "CANCELLED",
		ScheduledTime: nil,
		ArrivalWindow: &landside.ArrivalWindow{
			StartTime: "15/01/2025 08:00",
			EndTime:   "15/01/2025 09:30",
		},
	})

	start := time.Date(2025, time.January, 15, 8, 0, 0, 0, time.Local)
	assert.True(t, start.Equal(out.ScheduledTime))
	assert.True(t, start.Equal(out.ArrivalWindow.Start))
	// The window is re-derived as exactly one hour regardless of the
	// backend's end bound.
	assert.Equal(t, time.Hour, out.ArrivalWindow.End.Sub(out.ArrivalWindow.Start))
	assert.Equal(t, models.AppointmentCancelled, out.Status)
}

func TestAppointmentWindowIgnoredWithoutBothBounds(t *testing.T) {
	scheduled := "15/01/2025 10:00"
	out := Appointment(landside.Appointment{
		AppointmentID: "a-2",
		Status:        "scheduled",
		ScheduledTime: scheduled,
		ArrivalWindow: &landside.ArrivalWindow{StartTime: "15/01/2025 07:00"},
	})

	want := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local)
	assert.True(t, want.Equal(out.ArrivalWindow.Start))
	assert.True(t, want.Add(time.Hour).Equal(out.ArrivalWindow.End))
}

func TestAppointmentUnknownStatusPreserved(t *testing.T) {
	out := Appointment(landside.Appointment{
		AppointmentID: "a-3",
		ScheduledTime: "15/01/2025 10:00",
		Status:        "RESCHEDULED",
	})
	assert.Equal(t, models.AppointmentStatus("rescheduled"), out.Status)
	assert.True(t, out.Status.InProgress())
}

func TestWarehouseStockClamped(t *testing.T) {
	material := "gypsum"
	out := Warehouse(warehousing.Warehouse{
		ID:           "w-1",
		Number:       "W01",
		Material:     &material,
		CurrentStock: -250,
		MaxCapacity:  500000,
	})

	assert.Zero(t, out.CurrentStock)
	assert.Equal(t, models.MaterialGypsum, out.Material)
}

func TestPurchaseOrderTotalsRecomputed(t *testing.T) {
	out := PurchaseOrder(invoicing.PurchaseOrder{
		PurchaseOrderID: "po-1",
		Status:          "PENDING",
		TotalValue:      1.0,
		OrderLines: []invoicing.OrderLine{
			{RawMaterialName: "gypsum", AmountInTons: 1000, PricePerTon: 13, LineTotal: 5},
			{RawMaterialName: "slag", AmountInTons: 250, PricePerTon: 160, LineTotal: 7},
		},
	})

	require.Len(t, out.Items, 2)
	assert.InDelta(t, 13000.0, out.Items[0].TotalPrice, 1e-6)
	assert.InDelta(t, 40000.0, out.Items[1].TotalPrice, 1e-6)
	assert.InDelta(t, 53000.0, out.TotalValue, 1e-6)
	assert.Equal(t, models.PurchaseOrderOutstanding, out.Status)
	assert.Nil(t, out.EstimatedDeliveryDate)
}

func TestPurchaseOrderStatusMapping(t *testing.T) {
	cases := map[string]models.PurchaseOrderStatus{
		"PENDING":   models.PurchaseOrderOutstanding,
		"pending":   models.PurchaseOrderOutstanding,
		"Fulfilled": models.PurchaseOrderFulfilled,
		"CANCELLED": models.PurchaseOrderCancelled,
		"ON_HOLD":   models.PurchaseOrderStatus("on_hold"),
		"":          models.PurchaseOrderStatus("unknown"),
	}
	for raw, want := range cases {
		out := PurchaseOrder(invoicing.PurchaseOrder{Status: raw})
		assert.Equal(t, want, out.Status, "raw %q", raw)
	}
}

func TestCommissionFor(t *testing.T) {
	po := models.PurchaseOrder{TotalValue: 53000}
	assert.InDelta(t, 530.0, CommissionFor(po), 1e-9)
}

func TestShippingOrderStatusLowercased(t *testing.T) {
	out := ShippingOrder(waterside.ShippingOrder{
		ID:                  "so-1",
		Status:              "READY_FOR_LOADING",
		InspectionCompleted: true,
		ActualArrivalDate:   "15/01/2025 06:00",
	})

	assert.Equal(t, models.ShippingOrderReadyForLoading, out.Status)
	assert.True(t, out.InspectionCompleted)
	require.NotNil(t, out.ActualArrivalDate)
	assert.Nil(t, out.ActualDepartureDate)
}

func TestNormalizeIdempotent(t *testing.T) {
	gross, tare := 38000.0, 6500.0
	in := landside.Truck{
		ID:             "t-1",
		Material:       "petcoke",
		Status:         "EXIT",
		PlannedArrival: "15/01/2025 08:30",
		GrossWeight:    &gross,
		TareWeight:     &tare,
	}

	first := Truck(in)
	second := Truck(in)
	assert.Equal(t, first, second)
}
