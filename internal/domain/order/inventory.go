package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckInventory compara lo solicitado contra lo disponible (igual se permite).
// name identifica el material en el mensaje; cantidades con 2 decimales.
func CheckInventory(name string, requested, available decimal.Decimal) string {
	if requested.GreaterThan(available) {
		return fmt.Sprintf(MsgInventory, name, requested.StringFixed(2), available.StringFixed(2))
	}
	return ""
}

// Demand cantidad total solicitada por material, en el orden en que aparece cada material.
type Demand struct {
	MaterialID string
	Quantity   decimal.Decimal
}

// SumByMaterial agrupa las líneas por material sumando cantidades.
func SumByMaterial(lines []DraftLine) []Demand {
	idx := make(map[string]int, len(lines))
	out := make([]Demand, 0, len(lines))
	for _, l := range lines {
		if i, ok := idx[l.MaterialID]; ok {
			out[i].Quantity = out[i].Quantity.Add(l.Quantity)
			continue
		}
		idx[l.MaterialID] = len(out)
		out = append(out, Demand{MaterialID: l.MaterialID, Quantity: l.Quantity})
	}
	return out
}
