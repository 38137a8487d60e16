package http

import (
	"net/http"

	"github.com/clockwise-hr/timetracker-backend-go/internal/domain/timer"
	"github.com/clockwise-hr/timetracker-backend-go/internal/handler/http/response"
)

type TimerHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Pause(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	Stop(w http.ResponseWriter, r *http.Request)
}

type timerHandlerImpl struct {
	timerService timer.TimerService
}

func NewTimerHandler(timerService timer.TimerService) TimerHandler {
	return &timerHandlerImpl{
		timerService: timerService,
	}
}

// Start implements TimerHandler.
func (h *timerHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	result, err := h.timerService.Start(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timer started", result)
}

// Pause implements TimerHandler.
func (h *timerHandlerImpl) Pause(w http.ResponseWriter, r *http.Request) {
	result, err := h.timerService.Pause(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timer paused", result)
}

// Resume implements TimerHandler.
func (h *timerHandlerImpl) Resume(w http.ResponseWriter, r *http.Request) {
	result, err := h.timerService.Resume(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timer resumed", result)
}

// Stop implements TimerHandler.
func (h *timerHandlerImpl) Stop(w http.ResponseWriter, r *http.Request) {
	result, err := h.timerService.Stop(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timer stopped", result)
}
