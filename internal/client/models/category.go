package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nursenotes/internal/common"
)

// Category names one of the four option lists. The value is also the
// storage key of the list and its key in an exported bundle.
type Category string

const (
	CategoryNurseName   Category = "nurseNameDropdown"
	CategoryPatientName Category = "patientNameDropdown"
	CategoryActivity    Category = "activityDropdown"
	CategoryObservation Category = "observationDropdown"
)

// Categories lists every category in form order.
var Categories = []Category{
	CategoryNurseName,
	CategoryPatientName,
	CategoryActivity,
	CategoryObservation,
}

var aliases = map[string]Category{
	"nurse":       CategoryNurseName,
	"nurses":      CategoryNurseName,
	"patient":     CategoryPatientName,
	"patients":    CategoryPatientName,
	"activity":    CategoryActivity,
	"activities":  CategoryActivity,
	"observation": CategoryObservation,
	"obs":         CategoryObservation,
}

// ParseCategory accepts a storage key ("activityDropdown") or a short alias
// ("activity", "obs").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	if c, ok := aliases[strings.ToLower(s)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownCategory, s)
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label is the human-readable name used in prompts.
func (c Category) Label() string {
	switch c {
	case CategoryNurseName:
		return "Nurse name"
	case CategoryPatientName:
		return "Patient name"
	case CategoryActivity:
		return "Activity"
	case CategoryObservation:
		return "Observation"
	default:
		return string(c)
	}
}

// Bundle maps categories to their ordered option lists. It is the export
// and import format of the option registry.
type Bundle map[Category][]string
