package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/account"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/contract"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/facility"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/job"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/schedule"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/team"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/timeentry"
	"github.com/brightline-ops/cleanops-backend-go/internal/domain/user"
	"github.com/brightline-ops/cleanops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Typed errors carry detail the client needs for override prompts.
	var winErr *schedule.OutsideWindowError
	if errors.As(err, &winErr) {
		UnprocessableWithCode(w, "OUTSIDE_SERVICE_WINDOW", winErr.Error(), map[string]string{
			"window":   winErr.Window,
			"timezone": winErr.Timezone,
		})
		return
	}
	var geoErr *timeentry.OutsideGeofenceError
	if errors.As(err, &geoErr) {
		UnprocessableWithCode(w, "OUTSIDE_FACILITY_GEOFENCE", geoErr.Error(), map[string]string{
			"distance_m": fmt.Sprintf("%.0f", geoErr.DistanceM),
			"radius_m":   fmt.Sprintf("%.0f", geoErr.RadiusM),
		})
		return
	}

	switch {
	// Job lifecycle errors
	case errors.Is(err, job.ErrInvalidStateTransition):
		ConflictWithCode(w, "INVALID_STATE_TRANSITION", err.Error())
	case errors.Is(err, job.ErrAssignmentConflict),
		errors.Is(err, job.ErrAssignmentRequired):
		UnprocessableWithCode(w, "ASSIGNMENT_CONFLICT", err.Error(), nil)
	case errors.Is(err, job.ErrOverrideReasonRequired):
		UnprocessableWithCode(w, "OVERRIDE_REASON_REQUIRED", err.Error(), nil)
	case errors.Is(err, job.ErrOverrideNotAllowed):
		Forbidden(w, err.Error())

	// Access errors
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Time clock errors
	case errors.Is(err, timeentry.ErrActiveEntryExists):
		ConflictWithCode(w, "ACTIVE_ENTRY_EXISTS", err.Error())
	case errors.Is(err, timeentry.ErrClockInLocationRequired):
		UnprocessableWithCode(w, "CLOCK_IN_LOCATION_REQUIRED", err.Error(), nil)
	case errors.Is(err, timeentry.ErrOutsideFacilityGeofence):
		UnprocessableWithCode(w, "OUTSIDE_FACILITY_GEOFENCE", err.Error(), nil)
	case errors.Is(err, timeentry.ErrNoActiveEntry):
		ConflictWithCode(w, "NO_ACTIVE_ENTRY", err.Error())
	case errors.Is(err, timeentry.ErrClockOutTooEarly):
		ConflictWithCode(w, "CONFLICT", err.Error())

	// Schedule errors
	case errors.Is(err, schedule.ErrOutsideServiceWindow):
		UnprocessableWithCode(w, "OUTSIDE_SERVICE_WINDOW", err.Error(), nil)
	case errors.Is(err, schedule.ErrInvalidWindow),
		errors.Is(err, schedule.ErrInvalidDay):
		UnprocessableWithCode(w, "VALIDATION_ERROR", err.Error(), nil)

	// Not-found family
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, facility.ErrFacilityNotFound):
		NotFound(w, "Facility not found")
	case errors.Is(err, account.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, team.ErrTeamNotFound):
		NotFound(w, "Team not found")
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")

	// Uniqueness conflicts
	case errors.Is(err, account.ErrAccountNameExists):
		ConflictWithCode(w, "CONFLICT", err.Error())
	case errors.Is(err, contract.ErrContractNotActive):
		ConflictWithCode(w, "CONTRACT_NOT_ACTIVE", err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
