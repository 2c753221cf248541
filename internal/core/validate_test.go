// AngelaMos | 2026
// validate_test.go

package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `json:"campaign_name" validate:"required,max=10"`
	Budget   int    `json:"budget"        validate:"min=0"`
	Currency string `json:"currency"      validate:"omitempty,len=3"`
	Start    *Date  `json:"start_date"`
}

func decodeBody(body string) error {
	var dst sampleRequest
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return DecodeJSON(req, &dst)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.StatusCode
}

func TestDecodeJSONStatuses(t *testing.T) {
	assert.NoError(t, decodeBody(`{"campaign_name":"x","unknown":1}`))

	assert.Equal(t, http.StatusBadRequest, statusOf(t, decodeBody(`{"campaign_name":`)))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, decodeBody(`{bad json}`)))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, decodeBody(``)))
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, decodeBody(`{"budget":"lots"}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, decodeBody(`{"start_date":"yesterday"}`)))
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := ValidateStruct(v, sampleRequest{Budget: -1, Currency: "EURO"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))

	appErr, _ := AsAppError(err)
	assert.Contains(t, appErr.Message, "campaign_name is required")
	assert.Contains(t, appErr.Message, "budget must be at least 0")
	assert.Contains(t, appErr.Message, "currency must be exactly 3 characters")

	assert.NoError(t, ValidateStruct(v, sampleRequest{Name: "ok"}))
}
