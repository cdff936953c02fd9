package models

import "time"

// PayloadRecord is one delivery logged against a warehouse. The payload log
// is a display trail, not a stock ledger: CurrentStock is never reconciled
// against the sum of payload weights.
type PayloadRecord struct {
	ID           string       `json:"id"`
	DeliveryTime time.Time    `json:"deliveryTime"`
	Weight       float64      `json:"weight"`
	Material     MaterialType `json:"material"`
	SellerID     string       `json:"sellerId"`
}

// Warehouse is the canonical post-normalization warehouse record.
type Warehouse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	SellerID     string          `json:"sellerId"`
	SellerName   string          `json:"sellerName"`
	Material     MaterialType    `json:"material,omitempty"`
	CurrentStock float64         `json:"currentStock"`
	MaxCapacity  float64         `json:"maxCapacity"`
	Payloads     []PayloadRecord `json:"payloads"`
}

// CapacityRatio returns used capacity as a fraction of MaxCapacity.
func (w Warehouse) CapacityRatio() float64 {
	if w.MaxCapacity <= 0 {
		return 0
	}
	return w.CurrentStock / w.MaxCapacity
}

// AtHighCapacity reports whether the warehouse is at or above 80% of capacity.
func (w Warehouse) AtHighCapacity() bool {
	return w.CapacityRatio() >= 0.8
}

// OverCapacity reports whether stock exceeds the rated maximum.
func (w Warehouse) OverCapacity() bool {
	return w.CapacityRatio() > 1.0
}
