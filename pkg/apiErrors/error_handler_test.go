package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "erro interno",
			code:       ErrInternalServer,
			message:    MessageInternalError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":"SRV_001","message":"internal_error"}`,
		},
		{
			name:       "rota inexistente",
			code:       ErrNotFound,
			message:    "not_found",
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":"VAL_004","message":"not_found"}`,
		},
		{
			name:       "código desconhecido vira 500",
			code:       "XXX_999",
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":"XXX_999"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.code, tt.message, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"SRV_001","message":"internal_error"}`, rec.Body.String())
}
