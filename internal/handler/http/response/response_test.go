package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "att-1"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Nil(t, body.Error)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{}, &Meta{Page: 2, Limit: 20, TotalItems: 45, TotalPages: 3})

	body := decode(t, rec)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Page)
	assert.Equal(t, 3, body.Meta.TotalPages)
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(rec *httptest.ResponseRecorder)
		wantCode int
		wantErr  string
	}{
		{"bad request", func(rec *httptest.ResponseRecorder) { BadRequest(rec, "bad", nil) }, 400, "BAD_REQUEST"},
		{"unauthorized", func(rec *httptest.ResponseRecorder) { Unauthorized(rec, "no token") }, 401, "UNAUTHORIZED"},
		{"forbidden", func(rec *httptest.ResponseRecorder) { Forbidden(rec, "not yours") }, 403, "FORBIDDEN"},
		{"not found", func(rec *httptest.ResponseRecorder) { NotFound(rec, "gone") }, 404, "NOT_FOUND"},
		{"conflict", func(rec *httptest.ResponseRecorder) { Conflict(rec, "already checked in") }, 409, "CONFLICT"},
		{"internal", func(rec *httptest.ResponseRecorder) { InternalServerError(rec, "boom") }, 500, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.fn(rec)

			assert.Equal(t, tt.wantCode, rec.Code)

			body := decode(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}

func TestValidationErrorCarriesFieldDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"work_schedule_id": "work_schedule_id is required"})

	assert.Equal(t, 422, rec.Code)

	body := decode(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "work_schedule_id is required", body.Error.Details["work_schedule_id"])
}
