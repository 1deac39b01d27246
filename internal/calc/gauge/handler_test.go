package gauge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_NilTablesAnswers503(t *testing.T) {
	h := &Handler{}
	req := httptest.NewRequest(http.MethodPost, "/tools/gauge/calc", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Calc(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_BadPayload(t *testing.T) {
	h := &Handler{Tables: testCatalog()}
	req := httptest.NewRequest(http.MethodPost, "/tools/gauge/calc", strings.NewReader(`{"ib_a":`))
	rec := httptest.NewRecorder()

	h.Calc(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_OptimizesCircuit(t *testing.T) {
	h := &Handler{Tables: testCatalog()}
	body := `{"system":"three_phase","ib_a":50,"length_m":100,"cos_phi":0.85,"voltage_v":380,"max_drop_pct":5.0,"grouping_ca":1.0}`
	req := httptest.NewRequest(http.MethodPost, "/tools/gauge/calc", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Calc(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Found)
	assert.Equal(t, 10.0, res.GaugeMM2)
}
