package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"slate/shared/failure"
	"slate/transport/http/response"
)

func TestWithError(t *testing.T) {
	t.Run("duplicate chalan rejection carries the existing chalan's id", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		response.WithError(recorder, failure.DuplicateChalanForBooking("c-existing"))

		assert.Equal(t, http.StatusConflict, recorder.Code)

		var body response.Error
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, failure.KindDuplicateChalan, body.Kind)
		assert.Equal(t, "c-existing", body.Ref)
		assert.Equal(t, "a chalan already exists for this booking", *body.Error)
	})

	t.Run("plain errors stay a bare message", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		response.WithError(recorder, errors.New("database error"))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"error":"database error"}`, recorder.Body.String())
	})

	t.Run("kinded failures expose their kind", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		response.WithError(recorder, failure.PastBookingImmutable())

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

		var body response.Error
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, failure.KindPastBookingImmutable, body.Kind)
		assert.Empty(t, body.Ref)
	})
}
