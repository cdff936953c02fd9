// Package synthetic fabricates a complete, internally consistent dataset
// used whenever live data is unavailable. The dataset is generated once per
// process from a fixed seed, so repeated fallbacks within a session show the
// same identities instead of flickering between random sets.
package synthetic

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/HopeyCodeDS/mineralflow/internal/domain/models"
)

const datasetSeed = 1736899200

const (
	truckCount         = 25
	purchaseOrderCount = 15
	maxCapacityTons    = 500000
)

type seller struct {
	id   string
	name string
}

var sellers = []seller{
	{"seller-1", "Nordic Minerals Ltd"},
	{"seller-2", "Baltic Materials Co"},
	{"seller-3", "European Resources"},
	{"seller-4", "Atlantic Mining Group"},
	{"seller-5", "Continental Supplies"},
}

var buyers = []seller{
	{"buyer-1", "Global Steel Corp"},
	{"buyer-2", "Construction Giants Ltd"},
	{"buyer-3", "Industrial Solutions"},
	{"buyer-4", "Maritime Builders"},
}

// Dataset is one coherent fallback view of the whole site.
type Dataset struct {
	Trucks         []models.Truck
	Appointments   []models.Appointment
	Warehouses     []models.Warehouse
	PurchaseOrders []models.PurchaseOrder
	ShippingOrders []models.ShippingOrder
}

var (
	once   sync.Once
	shared Dataset
)

// Fallback returns the process-wide synthetic dataset. Consumers must treat
// it as read-only.
func Fallback() *Dataset {
	once.Do(func() {
		shared = generate(time.Now().Truncate(time.Minute))
	})
	return &shared
}

func generate(anchor time.Time) Dataset {
	r := rand.New(rand.NewSource(datasetSeed))

	trucks := generateTrucks(r, anchor)
	ds := Dataset{
		Trucks:         trucks,
		Appointments:   generateAppointments(trucks),
		Warehouses:     generateWarehouses(r, anchor),
		PurchaseOrders: generatePurchaseOrders(r, anchor),
		ShippingOrders: generateShippingOrders(anchor),
	}
	return ds
}

func generateTrucks(r *rand.Rand, anchor time.Time) []models.Truck {
	statuses := []models.TruckStatus{
		models.TruckScheduled,
		models.TruckAtGate,
		models.TruckAtBridge,
		models.TruckAtWarehouse,
		models.TruckExited,
		models.TruckAtGarage,
	}

	trucks := make([]models.Truck, 0, truckCount)
	for i := 0; i < truckCount; i++ {
		s := sellers[r.Intn(len(sellers))]
		material := models.MaterialTypes[r.Intn(len(models.MaterialTypes))]
		status := statuses[r.Intn(len(statuses))]

		// Planned anywhere from 4h ago to 8h ahead.
		planned := anchor.Add(time.Duration(r.Int63n(int64(12*time.Hour))) - 4*time.Hour)

		t := models.Truck{
			ID:              fmt.Sprintf("truck-%d", i+1),
			LicensePlate:    fmt.Sprintf("KDG%03d", i+1),
			Material:        material,
			PlannedArrival:  planned,
			Status:          status,
			SellerID:        s.id,
			SellerName:      s.name,
			WarehouseNumber: fmt.Sprintf("W%02d", (i%truckCount)+1),
		}

		if status.OnSite() || status == models.TruckExited {
			arrival := planned.Add(time.Duration(r.Int63n(int64(45 * time.Minute))))
			t.ActualArrival = &arrival

			gross := 25000 + r.Float64()*15000
			tare := 5000 + r.Float64()*3000
			net := gross - tare
			t.GrossWeight = &gross
			t.TareWeight = &tare
			t.NetWeight = &net
		}

		trucks = append(trucks, t)
	}
	return trucks
}

func generateAppointments(trucks []models.Truck) []models.Appointment {
	appointments := make([]models.Appointment, 0, len(trucks))
	for i, truck := range trucks {
		appointments = append(appointments, models.Appointment{
			ID:            fmt.Sprintf("appointment-%d", i+1),
			TruckID:       truck.ID,
			LicensePlate:  truck.LicensePlate,
			SellerID:      truck.SellerID,
			SellerName:    truck.SellerName,
			Material:      truck.Material,
			ScheduledTime: truck.PlannedArrival,
			ArrivalWindow: models.ArrivalWindow{
				Start: truck.PlannedArrival,
				End:   truck.PlannedArrival.Add(time.Hour),
			},
			Status:          models.AppointmentStatusForTruck(truck.Status),
			WarehouseNumber: truck.WarehouseNumber,
		})
	}
	return appointments
}

func generateWarehouses(r *rand.Rand, anchor time.Time) []models.Warehouse {
	warehouses := make([]models.Warehouse, 0, len(sellers)*len(models.MaterialTypes))
	for sellerIdx, s := range sellers {
		for materialIdx, material := range models.MaterialTypes {
			index := sellerIdx*len(models.MaterialTypes) + materialIdx
			stock := float64(int(r.Float64() * maxCapacityTons))

			// Payload log sums to a fraction of stock; it is a delivery
			// trail, not a ledger, and is never reconciled.
			payloadCount := r.Intn(8) + 2
			logged := stock * (0.4 + 0.4*r.Float64())
			payloads := make([]models.PayloadRecord, 0, payloadCount)
			for p := 0; p < payloadCount; p++ {
				payloads = append(payloads, models.PayloadRecord{
					ID:           fmt.Sprintf("payload-%d-%d", index, p),
					DeliveryTime: anchor.Add(-time.Duration(r.Int63n(int64(7 * 24 * time.Hour)))),
					Weight:       logged / float64(payloadCount) * (0.8 + 0.4*r.Float64()),
					Material:     material,
					SellerID:     s.id,
				})
			}

			w := models.Warehouse{
				ID:           fmt.Sprintf("warehouse-%d", index+1),
				Number:       fmt.Sprintf("W%02d", index+1),
				SellerID:     s.id,
				SellerName:   s.name,
				CurrentStock: stock,
				MaxCapacity:  maxCapacityTons,
				Payloads:     payloads,
			}
			if stock > 1000 {
				w.Material = material
			}
			warehouses = append(warehouses, w)
		}
	}
	return warehouses
}

func generatePurchaseOrders(r *rand.Rand, anchor time.Time) []models.PurchaseOrder {
	statuses := []models.PurchaseOrderStatus{
		models.PurchaseOrderOutstanding,
		models.PurchaseOrderFulfilled,
		models.PurchaseOrderCancelled,
	}

	orders := make([]models.PurchaseOrder, 0, purchaseOrderCount)
	for i := 0; i < purchaseOrderCount; i++ {
		buyer := buyers[r.Intn(len(buyers))]
		s := sellers[r.Intn(len(sellers))]
		status := statuses[r.Intn(len(statuses))]

		itemCount := r.Intn(3) + 1
		items := make([]models.PurchaseOrderItem, 0, itemCount)
		var total float64
		for j := 0; j < itemCount; j++ {
			material := models.MaterialTypes[r.Intn(len(models.MaterialTypes))]
			quantity := float64(r.Intn(50000) + 10000)
			price := models.Materials[material].PricePerTon * (0.9 + 0.2*r.Float64())
			lineTotal := quantity * price
			total += lineTotal
			items = append(items, models.PurchaseOrderItem{
				Material:          material,
				Quantity:          quantity,
				AgreedPricePerTon: price,
				TotalPrice:        lineTotal,
			})
		}

		po := models.PurchaseOrder{
			ID:           fmt.Sprintf("po-%d", i+1),
			PONumber:     fmt.Sprintf("PO%04d", i+1),
			CustomerID:   buyer.id,
			CustomerName: buyer.name,
			SellerID:     s.id,
			SellerName:   s.name,
			OrderDate:    anchor.Add(-time.Duration(r.Int63n(int64(30 * 24 * time.Hour)))),
			Status:       status,
			Items:        items,
			TotalValue:   total,
		}
		if status == models.PurchaseOrderOutstanding {
			delivery := anchor.Add(time.Duration(r.Int63n(int64(14 * 24 * time.Hour))))
			po.EstimatedDeliveryDate = &delivery
		}
		orders = append(orders, po)
	}
	return orders
}

func generateShippingOrders(anchor time.Time) []models.ShippingOrder {
	arrival1 := anchor.Add(-90 * time.Minute)
	arrival3 := anchor.Add(-5 * time.Hour)

	return []models.ShippingOrder{
		{
			ID:                     "so-001",
			SONumber:               "SO-2025-001",
			VesselNumber:           "VESSEL-001",
			POReference:            "PO-2025-001",
			CustomerNumber:         "CUST-001",
			EstimatedArrivalDate:   anchor.Add(-2 * time.Hour),
			EstimatedDepartureDate: anchor.Add(46 * time.Hour),
			ActualArrivalDate:      &arrival1,
			Status:                 models.ShippingOrderArrived,
		},
		{
			ID:                     "so-002",
			SONumber:               "SO-2025-002",
			VesselNumber:           "VESSEL-002",
			POReference:            "PO-2025-002",
			CustomerNumber:         "CUST-002",
			EstimatedArrivalDate:   anchor.Add(22 * time.Hour),
			EstimatedDepartureDate: anchor.Add(3 * 24 * time.Hour),
			Status:                 models.ShippingOrderReadyForLoading,
			InspectionCompleted:    true,
			BunkeringCompleted:     true,
		},
		{
			ID:                     "so-003",
			SONumber:               "SO-2025-003",
			VesselNumber:           "VESSEL-003",
			POReference:            "PO-2025-003",
			CustomerNumber:         "CUST-001",
			EstimatedArrivalDate:   anchor.Add(-5 * time.Hour),
			EstimatedDepartureDate: anchor.Add(2 * 24 * time.Hour),
			ActualArrivalDate:      &arrival3,
			Status:                 models.ShippingOrderBunkering,
			InspectionCompleted:    true,
		},
	}
}
