package tracker

import (
	"fmt"
	"strings"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

// PortionNotFoundError reports a unit that could not be mapped to a gram
// weight for the matched food. It carries the food's full portion list
// so the caller can surface the valid options verbatim.
type PortionNotFoundError struct {
	Unit     string
	Portions []model.Portion
}

func (e *PortionNotFoundError) Error() string {
	if len(e.Portions) == 0 {
		return fmt.Sprintf("no portion data available to convert unit %q", e.Unit)
	}
	opts := make([]string, 0, len(e.Portions))
	for _, p := range e.Portions {
		opts = append(opts, fmt.Sprintf("%s (%.0fg)", p.Description, p.GramWeight))
	}
	return fmt.Sprintf("unit %q does not match any portion; available: %s", e.Unit, strings.Join(opts, ", "))
}

// InvalidUnitError reports an unrecognized water unit.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("unrecognized unit %q", e.Unit)
}

func isMassUnit(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "g", "gram", "grams":
		return true
	}
	return false
}

// ResolveGrams converts a (quantity, unit) pair to grams using the
// food's portion table. Mass units convert directly. Other units match
// case-insensitively as substrings of portion descriptions ("cup"
// matches "1 cup, cooked"); the first match in provider order wins.
func ResolveGrams(quantity float64, unit string, portions []model.Portion) (float64, error) {
	if isMassUnit(unit) {
		return quantity, nil
	}
	needle := strings.ToLower(strings.TrimSpace(unit))
	if needle != "" {
		for _, p := range portions {
			if strings.Contains(strings.ToLower(p.Description), needle) {
				return quantity * p.GramWeight, nil
			}
		}
	}
	return 0, &PortionNotFoundError{Unit: unit, Portions: portions}
}

// Fixed water conversion table, ml per unit.
var waterUnitsML = map[string]float64{
	"ml":          1,
	"milliliter":  1,
	"milliliters": 1,
	"l":           1000,
	"liter":       1000,
	"liters":      1000,
	"glass":       237,
	"glasses":     237,
	"oz":          29.57,
	"ounce":       29.57,
	"ounces":      29.57,
	"cup":         236.6,
	"cups":        236.6,
}

// WaterToML converts a water amount to milliliters.
func WaterToML(amount float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "ml"
	}
	factor, ok := waterUnitsML[u]
	if !ok {
		return 0, &InvalidUnitError{Unit: unit}
	}
	return amount * factor, nil
}
