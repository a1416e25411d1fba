package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"slate/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
					if f.Kind != failure.KindValidation {
						t.Errorf("expected kind to be %s, got %s", failure.KindValidation, f.Kind)
					}
				}
			}
		})
	}
}

func TestBusinessRuleFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind string
	}{
		{
			name: "ImmutableRecord",
			err:  failure.ImmutableRecord("booking"),
			code: http.StatusConflict,
			kind: failure.KindImmutableRecord,
		},
		{
			name: "AlreadyCancelled",
			err:  failure.AlreadyCancelled("chalan"),
			code: http.StatusConflict,
			kind: failure.KindAlreadyCancelled,
		},
		{
			name: "PastBookingImmutable",
			err:  failure.PastBookingImmutable(),
			code: http.StatusUnprocessableEntity,
			kind: failure.KindPastBookingImmutable,
		},
		{
			name: "DuplicateChalanForBooking",
			err:  failure.DuplicateChalanForBooking("chalan-123"),
			code: http.StatusConflict,
			kind: failure.KindDuplicateChalan,
		},
		{
			name: "NumberingRace",
			err:  failure.NumberingRace("chalan"),
			code: http.StatusConflict,
			kind: failure.KindNumberingRace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if failure.GetCode(tt.err) != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, failure.GetCode(tt.err))
			}
			if !failure.HasKind(tt.err, tt.kind) {
				t.Errorf("expected kind to be %s, got %s", tt.kind, failure.GetKind(tt.err))
			}
		})
	}
}

func TestDuplicateChalanCarriesRef(t *testing.T) {
	err := failure.DuplicateChalanForBooking("chalan-123")

	if failure.GetRef(err) != "chalan-123" {
		t.Errorf("expected ref to be 'chalan-123', got %s", failure.GetRef(err))
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("cancel booking: %w", failure.AlreadyCancelled("booking"))

	if !failure.HasKind(err, failure.KindAlreadyCancelled) {
		t.Errorf("expected wrapped error to keep kind %s", failure.KindAlreadyCancelled)
	}

	if failure.GetCode(err) != http.StatusConflict {
		t.Errorf("expected wrapped error to keep code %d, got %d", http.StatusConflict, failure.GetCode(err))
	}
}

func TestGetKind_PlainError(t *testing.T) {
	if failure.GetKind(errors.New("plain")) != "" {
		t.Error("expected empty kind for plain error")
	}

	if failure.GetCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("expected internal server error code for plain error")
	}
}
