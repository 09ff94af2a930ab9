package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/httperr"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, httperr.HTTPError) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out httperr.HTTPError
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w, out
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		detail string
	}{
		{"slot full", httperr.ErrBusinessDetail(domain.CodeSlotFull, "10:00"), http.StatusConflict, domain.CodeSlotFull, "10:00"},
		{"date blocked", httperr.ErrBusinessDetail(domain.CodeDateBlocked, "2026-03-12"), http.StatusConflict, domain.CodeDateBlocked, "2026-03-12"},
		{"slot in past", httperr.ErrBusiness(domain.CodeSlotInPast), http.StatusUnprocessableEntity, domain.CodeSlotInPast, ""},
		{"illegal transition", httperr.ErrBusinessDetail(domain.CodeIllegalTransition, "NOVO->FINALIZADO"), http.StatusConflict, domain.CodeIllegalTransition, "NOVO->FINALIZADO"},
		{"not found", httperr.ErrBusiness(domain.CodeAppointmentNotFound), http.StatusNotFound, domain.CodeAppointmentNotFound, ""},
		{"persistence", httperr.Wrap(domain.CodePersistenceFailure, errors.New("eof")), http.StatusServiceUnavailable, domain.CodePersistenceFailure, ""},
		{"unknown business code", httperr.ErrBusiness("something_else"), http.StatusUnprocessableEntity, "something_else", ""},
		{"technical error", errors.New("boom"), http.StatusInternalServerError, "internal_error", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.RequestID())
			r.GET("/x", func(c *gin.Context) { respondError(c, tc.err) })

			w, body := serve(t, r, http.MethodGet, "/x", "")
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.detail, body.Detail)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestBusinessErrorsHavePortugueseMessages(t *testing.T) {
	for code, view := range businessErrors {
		assert.NotEmpty(t, view.message, code)
		assert.GreaterOrEqual(t, view.status, http.StatusBadRequest, code)
	}
}

func withHangar(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextHangarID, uint(1))
		c.Set(middleware.ContextUserID, uint(9))
		h(c)
	}
}

func TestAppointmentHandlerRejectsBadInputBeforeUseCase(t *testing.T) {
	// use cases nil: qualquer chamada indevida derrubaria o teste
	h := NewAppointmentHandler(nil, nil, nil, nil, nil)

	r := gin.New()
	r.GET("/appointments", withHangar(h.ListByDate))
	r.GET("/appointments/month", withHangar(h.ListByMonth))
	r.PATCH("/appointments/:id/status", withHangar(h.UpdateStatus))
	r.DELETE("/appointments/:id", withHangar(h.Delete))
	r.POST("/appointments", withHangar(h.Create))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   string
	}{
		{"missing date", http.MethodGet, "/appointments", "", "missing_date"},
		{"missing month", http.MethodGet, "/appointments/month?year=2026", "", "invalid_period"},
		{"non numeric id", http.MethodPatch, "/appointments/abc/status", `{"status":"CONFIRMADO"}`, "invalid_id"},
		{"unknown status", http.MethodPatch, "/appointments/3/status", `{"status":"PAGO"}`, "invalid_status"},
		{"empty status", http.MethodPatch, "/appointments/3/status", `{}`, "invalid_request"},
		{"zero id delete", http.MethodDelete, "/appointments/0?confirm=true", "", "invalid_id"},
		{"missing service", http.MethodPost, "/appointments", `{"date":"2026-03-10","time":"10:00"}`, "invalid_request"},
		{"bad email", http.MethodPost, "/appointments", `{"service_id":1,"date":"2026-03-10","time":"10:00","customer_email":"x@"}`, "invalid_email"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, body := serve(t, r, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestVehicleRequestInfo(t *testing.T) {
	info := VehicleRequest{Brand: "VW", Model: "Gol", Plate: "abc-1234", Type: "suv"}.info().Normalized()
	assert.Equal(t, "ABC1234", info.Plate)
	assert.Equal(t, "SUV", info.Type)
}
