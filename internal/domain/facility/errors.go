package facility

import "errors"

var (
	ErrFacilityNotFound = errors.New("facility not found")
)
