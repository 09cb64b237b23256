package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow        = errors.New("service window end must be after window start")
	ErrInvalidDay           = errors.New("service day must be between 1 (Monday) and 7 (Sunday)")
	ErrOutsideServiceWindow = errors.New("current time is outside the allowed service window")
)

// OutsideWindowError carries the window bounds and timezone so clients can
// show what was violated and offer the manager override prompt.
type OutsideWindowError struct {
	Window   string // e.g. "09:00-17:00"
	Timezone string
	At       time.Time
}

func (e *OutsideWindowError) Error() string {
	return fmt.Sprintf("time %s is outside the service window %s (%s)",
		e.At.Format("15:04"), e.Window, e.Timezone)
}

func (e *OutsideWindowError) Is(target error) bool {
	return target == ErrOutsideServiceWindow
}
