// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorEnvelope is the body rendered for a failed request
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details struct {
		Code      string                 `json:"code"`
		Message   string                 `json:"message"`
		Metadata  map[string]interface{} `json:"metadata"`
		RequestID string                 `json:"request_id"`
	} `json:"details"`
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code, printing the body on mismatch
func (ha *HTTPAssertions) StatusCode(w *httptest.ResponseRecorder, expectedCode int) {
	require.NotNil(ha.t, w, "Response should not be nil")
	require.Equal(ha.t, expectedCode, w.Code, w.Body.String())
}

// JSONResponse asserts that the response is JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(w *httptest.ResponseRecorder, target interface{}) {
	require.NotNil(ha.t, w, "Response should not be nil")

	contentType := w.Header().Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)
	require.NoError(ha.t, json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

// ErrorResponse asserts a failed envelope with the given status and error code
func (ha *HTTPAssertions) ErrorResponse(w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) ErrorEnvelope {
	ha.StatusCode(w, expectedStatus)

	var env ErrorEnvelope
	ha.JSONResponse(w, &env)
	assert.False(ha.t, env.Success, "Error response should not report success")
	assert.Equal(ha.t, expectedCode, env.Details.Code)
	assert.NotEmpty(ha.t, env.Error, "Error response should carry a message")
	return env
}

// Attachment asserts a downloadable document of the given type and file name
func (ha *HTTPAssertions) Attachment(w *httptest.ResponseRecorder, contentType, filename string) {
	ha.StatusCode(w, 200)
	assert.Equal(ha.t, contentType, w.Header().Get("Content-Type"))

	disposition := w.Header().Get("Content-Disposition")
	assert.True(ha.t, strings.HasPrefix(disposition, "attachment;"), "Expected attachment, got: %s", disposition)
	assert.Contains(ha.t, disposition, `filename="`+filename+`"`)
	assert.NotZero(ha.t, w.Body.Len(), "Attachment should not be empty")
}

// SecurityHeaders asserts the headers every response carries
func (ha *HTTPAssertions) SecurityHeaders(w *httptest.ResponseRecorder) {
	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	}
	for header, value := range expected {
		assert.Equal(ha.t, value, w.Header().Get(header), "Security header %s", header)
	}
	assert.NotEmpty(ha.t, w.Header().Get("X-Request-ID"), "Response should carry a request id")
}

// DatabaseAssertions provides database-specific assertion methods
type DatabaseAssertions struct {
	t  *testing.T
	db *TestDatabase
}

// NewDatabaseAssertions creates a new database assertions helper
func NewDatabaseAssertions(t *testing.T, db *TestDatabase) *DatabaseAssertions {
	return &DatabaseAssertions{t: t, db: db}
}

// RecordExists asserts that a record matching the where clause exists
func (da *DatabaseAssertions) RecordExists(table, whereClause string, args ...interface{}) {
	var count int64
	err := da.db.GormDB.Table(table).Where(whereClause, args...).Count(&count).Error
	require.NoError(da.t, err)
	assert.Positive(da.t, count, "Expected a %s record where %s", table, whereClause)
}

// RecordNotExists asserts that no record matches the where clause
func (da *DatabaseAssertions) RecordNotExists(table, whereClause string, args ...interface{}) {
	var count int64
	err := da.db.GormDB.Table(table).Where(whereClause, args...).Count(&count).Error
	require.NoError(da.t, err)
	assert.Zero(da.t, count, "Expected no %s record where %s", table, whereClause)
}

// RecordCount asserts the number of rows in a table
func (da *DatabaseAssertions) RecordCount(table string, expectedCount int) {
	assert.Equal(da.t, expectedCount, da.db.CountRecords(table), "Row count of %s", table)
}

// TableEmpty asserts that a table has no rows
func (da *DatabaseAssertions) TableEmpty(table string) {
	da.RecordCount(table, 0)
}
