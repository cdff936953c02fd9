package models

import "strings"

// MaterialType is the canonical bulk-material vocabulary used across the site.
type MaterialType string

const (
	MaterialGypsum  MaterialType = "gypsum"
	MaterialIronOre MaterialType = "iron-ore"
	MaterialCement  MaterialType = "cement"
	MaterialPetcoke MaterialType = "petcoke"
	MaterialSlag    MaterialType = "slag"
	MaterialUnknown MaterialType = "unknown"
)

// Material carries display and pricing metadata for one material type.
type Material struct {
	Type                    MaterialType
	Name                    string
	PricePerTon             float64
	StorageCostPerTonPerDay float64
}

// Materials is the reference catalogue, keyed by canonical type.
var Materials = map[MaterialType]Material{
	MaterialGypsum:  {Type: MaterialGypsum, Name: "Gypsum", PricePerTon: 13, StorageCostPerTonPerDay: 1},
	MaterialIronOre: {Type: MaterialIronOre, Name: "Iron Ore", PricePerTon: 110, StorageCostPerTonPerDay: 5},
	MaterialCement:  {Type: MaterialCement, Name: "Cement", PricePerTon: 95, StorageCostPerTonPerDay: 3},
	MaterialPetcoke: {Type: MaterialPetcoke, Name: "Petcoke", PricePerTon: 210, StorageCostPerTonPerDay: 10},
	MaterialSlag:    {Type: MaterialSlag, Name: "Slag", PricePerTon: 160, StorageCostPerTonPerDay: 7},
}

// MaterialTypes lists the known materials in a fixed order.
var MaterialTypes = []MaterialType{MaterialGypsum, MaterialIronOre, MaterialCement, MaterialPetcoke, MaterialSlag}

// MaterialFromWire maps a backend material identifier to its canonical type.
// Backends have been observed to emit underscore, hyphen and mixed-case
// variants ("Iron_Ore", "iron_ore", "IRON-ORE"). An unrecognized value maps
// to MaterialUnknown so a single malformed record never aborts a collection.
func MaterialFromWire(raw string) MaterialType {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")

	switch MaterialType(normalized) {
	case MaterialGypsum, MaterialIronOre, MaterialCement, MaterialPetcoke, MaterialSlag:
		return MaterialType(normalized)
	}
	if normalized == "ironore" {
		return MaterialIronOre
	}
	return MaterialUnknown
}
