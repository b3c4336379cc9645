package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microcourses/api/internal/api/shared"
	"github.com/microcourses/api/internal/service"
	"github.com/microcourses/api/internal/service/auth"
	"github.com/microcourses/api/internal/store"
)

func TestRespondWithServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{name: "invalid credentials", err: auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized, wantCode: shared.CodeUnauthorized},
		{name: "duplicate email", err: store.ErrEmailExists,
			wantStatus: http.StatusBadRequest, wantCode: shared.CodeAlreadyExists, wantField: "email"},
		{name: "pending application", err: store.ErrPendingApplicationExists,
			wantStatus: http.StatusBadRequest, wantCode: shared.CodeAlreadyExists},
		{name: "duplicate lesson order", err: store.ErrDuplicateLessonOrder,
			wantStatus: http.StatusBadRequest, wantCode: shared.CodeInvalid, wantField: "order_index"},
		{name: "not editable", err: service.ErrCourseNotEditable,
			wantStatus: http.StatusBadRequest, wantCode: shared.CodeInvalid, wantField: "status"},
		{name: "invalid transition", err: service.ErrInvalidCourseState,
			wantStatus: http.StatusBadRequest, wantCode: shared.CodeInvalid, wantField: "status"},
		{name: "incomplete course", err: service.ErrCourseIncomplete,
			wantStatus: http.StatusBadRequest, wantCode: shared.CodeInvalid},
		{name: "course not found", err: store.ErrCourseNotFound,
			wantStatus: http.StatusNotFound, wantCode: shared.CodeNotFound},
		{name: "wrapped not found", err: store.ErrLessonNotFound,
			wantStatus: http.StatusNotFound, wantCode: shared.CodeNotFound},
		{name: "unknown error", err: errors.New("db on fire"),
			wantStatus: http.StatusInternalServerError, wantCode: shared.CodeInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/api/test", nil)
			rec := httptest.NewRecorder()
			respondWithServiceError(rec, r, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var envelope shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tc.wantCode, envelope.Error.Code)
			assert.Equal(t, tc.wantField, envelope.Error.Field)
			assert.NotEmpty(t, envelope.Error.Message)

			// The internal error text never leaks to the client.
			if tc.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "db on fire")
			}
		})
	}
}
