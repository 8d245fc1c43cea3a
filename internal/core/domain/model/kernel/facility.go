package kernel

import (
	"fmt"
	"strings"

	"courierdesk/internal/pkg/errs"
)

// Facility is the physical intake site where a package was received.
//
// The zero value FacilityUnknown is invalid; it catches facilities that were never set.
type Facility int

const (
	FacilityUnknown Facility = iota
	// FacilityDefault is the main warehouse.
	FacilityDefault
	FacilitySiteA
	FacilitySiteB
)

var facilityNames = map[Facility]string{
	FacilityDefault: "default",
	FacilitySiteA:   "siteA",
	FacilitySiteB:   "siteB",
}

// ParseFacility resolves the persisted/transport name of a facility (case-insensitive).
func ParseFacility(s string) (Facility, error) {
	for f, name := range facilityNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return FacilityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"facility", fmt.Errorf("%q is not one of default, siteA, siteB", s))
}

// Validate fails for FacilityUnknown and out-of-range values.
func (f Facility) Validate() error {
	if _, ok := facilityNames[f]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("facility", fmt.Errorf("%d is not a valid facility", f))
	}
	return nil
}

func (f Facility) String() string {
	if name, ok := facilityNames[f]; ok {
		return name
	}
	return "unknown"
}
