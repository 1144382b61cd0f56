package failure

import (
	"errors"
	"hotel/shared/constant"

	"github.com/lib/pq"
)

// FromPqError maps constraint violations raised by postgres onto request failures.
// It returns nil when err is not a *pq.Error carrying one of the handled codes.
func FromPqError(err error, conflictMessage string) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case constant.PqErrorCodeUniqueViolation:
		return BadRequestFromString(duplicateMessage(pqErr))
	case constant.PqErrorCodeCheckViolation:
		return BadRequestFromString("value violates constraint " + pqErr.Constraint)
	case constant.PqErrorCodeFkViolation:
		return BadRequestFromString("referenced record does not exist")
	case constant.PqErrorCodeExclusionViolation, constant.PqErrorCodeSerializationFailure:
		return Conflict(conflictMessage)
	}

	return nil
}

func duplicateMessage(pqErr *pq.Error) string {
	if pqErr.Constraint == "" {
		return "record already exists"
	}

	return "duplicate value violates " + pqErr.Constraint
}

// IsUniqueViolation reports whether err is a postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
