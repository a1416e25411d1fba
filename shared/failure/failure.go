package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind discriminates business-rule rejections so callers can branch on the
// cause without string matching.
const (
	KindValidation           = "validation"
	KindImmutableRecord      = "immutable_record"
	KindAlreadyCancelled     = "already_cancelled"
	KindPastBookingImmutable = "past_booking_immutable"
	KindDuplicateChalan      = "duplicate_chalan_for_booking"
	KindNumberingRace        = "numbering_race"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Ref     string `json:"ref,omitempty"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
			Kind:    KindValidation,
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Kind:    KindValidation,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// ImmutableRecord rejects an edit attempted on a record that has reached a
// terminal state (cancelled booking or cancelled chalan).
func ImmutableRecord(entityName string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("%s is cancelled and can no longer be modified", entityName),
		Kind:    KindImmutableRecord,
	}
}

// AlreadyCancelled rejects a repeated cancellation.
func AlreadyCancelled(entityName string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("%s is already cancelled", entityName),
		Kind:    KindAlreadyCancelled,
	}
}

// PastBookingImmutable rejects cancellation of a booking whose date has
// already passed. Historical bookings back completed billing and stay as-is.
func PastBookingImmutable() error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: "bookings on past dates can no longer be cancelled",
		Kind:    KindPastBookingImmutable,
	}
}

// DuplicateChalanForBooking rejects a second chalan for a booking. Ref carries
// the existing chalan's id so the caller can redirect instead of retry.
func DuplicateChalanForBooking(existingChalanID string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: "a chalan already exists for this booking",
		Kind:    KindDuplicateChalan,
		Ref:     existingChalanID,
	}
}

// Unavailable marks a transient condition the caller should retry later.
func Unavailable(msg string) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Message: msg,
	}
}

// NumberingRace marks a transient sequence collision. It is retried
// internally and must never reach the end user.
func NumberingRace(sequenceName string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("concurrent %s number allocation", sequenceName),
		Kind:    KindNumberingRace,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind, or an empty string for plain errors.
func GetKind(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// GetRef returns the related entity reference attached to the failure, if any.
func GetRef(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Ref
	}

	return ""
}

// HasKind reports whether err is a Failure of the given kind.
func HasKind(err error, kind string) bool {
	return GetKind(err) == kind
}
