package postgres

import (
	"errors"

	"github.com/lib/pq"

	"slate/shared/constant"
)

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation. Chalan and revision numbering rely on it to detect a lost
// allocation race and recompute.
func IsUniqueViolation(err error) bool {
	return hasPqCode(err, constant.PqErrorCodeUniqueViolation)
}

// IsExclusionViolation reports whether err tripped an exclusion constraint,
// the database-level backstop against double-booked rooms.
func IsExclusionViolation(err error) bool {
	return hasPqCode(err, constant.PqErrorCodeExclusionViolation)
}

// UniqueConstraint returns the name of the violated unique constraint, or an
// empty string. Callers use it to tell a number collision apart from a
// duplicate booking reference, which share the error code.
func UniqueConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return pqErr.Constraint
	}

	return ""
}

func hasPqCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
