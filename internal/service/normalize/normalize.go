// Package normalize converts the backends' wire shapes into the canonical
// domain model. Every function here is pure and total over the shapes the
// backends are known to emit: a malformed field degrades to a sentinel or a
// derived value, never to a panic or a dropped collection.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/invoicing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/landside"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/warehousing"
	"github.com/HopeyCodeDS/mineralflow/pkg/clients/waterside"
)

// commissionRate is the site's fixed brokerage cut on order value.
var commissionRate = decimal.NewFromFloat(0.01)

// statusToken lowercases a backend status. Unrecognized tokens stay visible
// as themselves instead of being coerced into a known bucket.
func statusToken(raw string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "unknown"
	}
	return token
}

// Truck converts one wire truck record.
func Truck(in landside.Truck) models.Truck {
	out := models.Truck{
		ID:             in.ID,
		LicensePlate:   in.LicensePlate,
		Material:       models.MaterialFromWire(in.Material),
		PlannedArrival: timeOrNow(in.PlannedArrival),
		ActualArrival:  timePtr(in.ActualArrival),
		Status:         models.TruckStatus(in.Status),
		SellerID:       in.SellerID,
		SellerName:     in.SellerName,
		GrossWeight:    in.GrossWeight,
		TareWeight:     in.TareWeight,
		NetWeight:      in.NetWeight,
	}
	if in.WarehouseNumber != nil {
		out.WarehouseNumber = *in.WarehouseNumber
	}
	// Net weight is an identity, not a fact to trust from the backend.
	if in.GrossWeight != nil && in.TareWeight != nil {
		net := *in.GrossWeight - *in.TareWeight
		out.NetWeight = &net
	}
	return out
}

// Trucks converts a wire truck collection.
func Trucks(in []landside.Truck) []models.Truck {
	out := make([]models.Truck, 0, len(in))
	for _, t := range in {
		out = append(out, Truck(t))
	}
	return out
}

// Appointment converts one wire appointment record.
//
// Scheduled time falls back through the arrival window start and finally the
// current instant; cancelled appointments arrive with a null scheduledTime.
// The arrival window is always re-derived as exactly one hour from its
// start, whether or not the backend supplied both bounds.
func Appointment(in landside.Appointment) models.Appointment {
	scheduled, ok := ParseTime(in.ScheduledTime)
	if !ok {
		if in.ArrivalWindow != nil {
			scheduled, ok = ParseTime(in.ArrivalWindow.StartTime)
		}
		if !ok {
			scheduled = time.Now()
		}
	}

	windowStart := scheduled
	if in.ArrivalWindow != nil {
		if start, startOK := ParseTime(in.ArrivalWindow.StartTime); startOK {
			if _, endOK := ParseTime(in.ArrivalWindow.EndTime); endOK {
				windowStart = start
			}
		}
	}

	return models.Appointment{
		ID:            in.AppointmentID,
		TruckID:       in.AppointmentID,
		LicensePlate:  in.LicensePlate,
		SellerID:      in.SellerID,
		SellerName:    in.SellerName,
		Material:      models.MaterialFromWire(in.RawMaterialName),
		ScheduledTime: scheduled,
		ArrivalWindow: models.ArrivalWindow{
			Start: windowStart,
			End:   windowStart.Add(time.Hour),
		},
		Status:          models.AppointmentStatus(statusToken(in.Status)),
		WarehouseNumber: "Unknown",
	}
}

// Appointments converts a wire appointment collection.
func Appointments(in []landside.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(in))
	for _, a := range in {
		out = append(out, Appointment(a))
	}
	return out
}

// Warehouse converts one wire warehouse record. Stock is clamped to zero;
// the payload log is carried as-is and never reconciled against stock.
func Warehouse(in warehousing.Warehouse) models.Warehouse {
	out := models.Warehouse{
		ID:           in.ID,
		Number:       in.Number,
		SellerID:     in.SellerID,
		SellerName:   in.SellerName,
		CurrentStock: in.CurrentStock,
		MaxCapacity:  in.MaxCapacity,
		Payloads:     make([]models.PayloadRecord, 0, len(in.Payloads)),
	}
	if out.CurrentStock < 0 {
		out.CurrentStock = 0
	}
	if in.Material != nil && *in.Material != "" {
		out.Material = models.MaterialFromWire(*in.Material)
	}
	for _, p := range in.Payloads {
		out.Payloads = append(out.Payloads, models.PayloadRecord{
			ID:           p.PdtID,
			DeliveryTime: timeOrNow(p.DeliveryTime),
			Weight:       p.PayloadWeight,
			Material:     models.MaterialFromWire(p.RawMaterialName),
			SellerID:     p.SellerID,
		})
	}
	return out
}

// Warehouses converts a wire warehouse collection.
func Warehouses(in []warehousing.Warehouse) []models.Warehouse {
	out := make([]models.Warehouse, 0, len(in))
	for _, w := range in {
		out = append(out, Warehouse(w))
	}
	return out
}

// purchaseOrderStatus maps the invoicing backend's vocabulary onto the
// canonical one. PENDING means outstanding; anything unrecognized is kept
// lowercased rather than misfiled.
func purchaseOrderStatus(raw string) models.PurchaseOrderStatus {
	switch token := statusToken(raw); token {
	case "pending", "outstanding":
		return models.PurchaseOrderOutstanding
	case "fulfilled":
		return models.PurchaseOrderFulfilled
	case "cancelled":
		return models.PurchaseOrderCancelled
	default:
		return models.PurchaseOrderStatus(token)
	}
}

// PurchaseOrder converts one wire purchase order. Line totals and the order
// total are recomputed from quantity × price; backend-supplied totals have
// been stale or rounded inconsistently in the past.
func PurchaseOrder(in invoicing.PurchaseOrder) models.PurchaseOrder {
	items := make([]models.PurchaseOrderItem, 0, len(in.OrderLines))
	total := decimal.Zero
	for _, line := range in.OrderLines {
		lineTotal := decimal.NewFromFloat(line.AmountInTons).Mul(decimal.NewFromFloat(line.PricePerTon))
		total = total.Add(lineTotal)
		items = append(items, models.PurchaseOrderItem{
			Material:          models.MaterialFromWire(line.RawMaterialName),
			Quantity:          line.AmountInTons,
			AgreedPricePerTon: line.PricePerTon,
			TotalPrice:        lineTotal.InexactFloat64(),
		})
	}

	return models.PurchaseOrder{
		ID:           in.PurchaseOrderID,
		PONumber:     in.PurchaseOrderNumber,
		CustomerID:   in.CustomerNumber,
		CustomerName: in.CustomerName,
		SellerID:     in.SellerID,
		SellerName:   in.SellerName,
		OrderDate:    timeOrNow(in.OrderDate),
		Status:       purchaseOrderStatus(in.Status),
		Items:        items,
		TotalValue:   total.InexactFloat64(),
	}
}

// PurchaseOrders converts a wire purchase-order collection.
func PurchaseOrders(in []invoicing.PurchaseOrder) []models.PurchaseOrder {
	out := make([]models.PurchaseOrder, 0, len(in))
	for _, po := range in {
		out = append(out, PurchaseOrder(po))
	}
	return out
}

// CommissionFor derives the site's commission on an order's value.
func CommissionFor(po models.PurchaseOrder) float64 {
	return decimal.NewFromFloat(po.TotalValue).Mul(commissionRate).InexactFloat64()
}

// ShippingOrder converts one wire shipping order.
func ShippingOrder(in waterside.ShippingOrder) models.ShippingOrder {
	return models.ShippingOrder{
		ID:                     in.ID,
		SONumber:               in.SONumber,
		VesselNumber:           in.VesselNumber,
		POReference:            in.POReference,
		CustomerNumber:         in.CustomerNumber,
		EstimatedArrivalDate:   timeOrNow(in.EstimatedArrivalDate),
		EstimatedDepartureDate: timeOrNow(in.EstimatedDepartureDate),
		ActualArrivalDate:      timePtr(in.ActualArrivalDate),
		ActualDepartureDate:    timePtr(in.ActualDepartureDate),
		Status:                 models.ShippingOrderStatus(statusToken(in.Status)),
		InspectionCompleted:    in.InspectionCompleted,
		BunkeringCompleted:     in.BunkeringCompleted,
		LoadingCompleted:       in.LoadingCompleted,
		ForemanSignature:       in.ForemanSignature,
		ValidationDate:         timePtr(in.ValidationDate),
	}
}

// ShippingOrders converts a wire shipping-order collection.
func ShippingOrders(in []waterside.ShippingOrder) []models.ShippingOrder {
	out := make([]models.ShippingOrder, 0, len(in))
	for _, so := range in {
		out = append(out, ShippingOrder(so))
	}
	return out
}
