package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimerService struct {
	response timer.TimerLogResponse
	err      error
}

func (f *fakeTimerService) Start(ctx context.Context) (timer.TimerLogResponse, error) {
	return f.response, f.err
}

func (f *fakeTimerService) Pause(ctx context.Context) (timer.TimerLogResponse, error) {
	return f.response, f.err
}

func (f *fakeTimerService) Resume(ctx context.Context) (timer.TimerLogResponse, error) {
	return f.response, f.err
}

func (f *fakeTimerService) Stop(ctx context.Context) (timer.TimerLogResponse, error) {
	return f.response, f.err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestTimerHandlerStart(t *testing.T) {
	t.Run("success returns 201", func(t *testing.T) {
		handler := NewTimerHandler(&fakeTimerService{
			response: timer.TimerLogResponse{ID: "log-1", State: timer.StateRunning},
		})

		rec := httptest.NewRecorder()
		handler.Start(rec, httptest.NewRequest(http.MethodPost, "/api/v1/timer/start", nil))

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
	})

	t.Run("running timer returns 409", func(t *testing.T) {
		handler := NewTimerHandler(&fakeTimerService{err: timer.ErrTimerAlreadyRunning})

		rec := httptest.NewRecorder()
		handler.Start(rec, httptest.NewRequest(http.MethodPost, "/api/v1/timer/start", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestTimerHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no active timer maps to 404", timer.ErrNoActiveTimer, http.StatusNotFound},
		{"already paused maps to 409", timer.ErrTimerAlreadyPaused, http.StatusConflict},
		{"not paused maps to 409", timer.ErrTimerNotPaused, http.StatusConflict},
		{"unknown error maps to 500", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTimerHandler(&fakeTimerService{err: tt.err})

			rec := httptest.NewRecorder()
			handler.Pause(rec, httptest.NewRequest(http.MethodPost, "/api/v1/timer/pause", nil))

			assert.Equal(t, tt.want, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
		})
	}
}
