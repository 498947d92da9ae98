package handler

import (
	"encoding/json"
	"net/http"

	"github.com/oggyb/greenapi-notifier/internal/request"
	"github.com/oggyb/greenapi-notifier/internal/response"
	"github.com/oggyb/greenapi-notifier/internal/scheduler"
)

// MaintenanceHandler controls the history maintenance scheduler.
type MaintenanceHandler struct {
	sch scheduler.SchedulerService
}

// NewMaintenanceHandler constructs a MaintenanceHandler.
func NewMaintenanceHandler(sch scheduler.SchedulerService) *MaintenanceHandler {
	return &MaintenanceHandler{sch: sch}
}

// Status godoc
// @Summary     Maintenance status
// @Description Reports whether the history maintenance job is running.
// @Tags        maintenance
// @Produce     json
// @Success     200 {object} response.SchedulerStatusResponse
// @Router      /maintenance [get]
func (h *MaintenanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, response.SchedulerStatusPayload{Running: h.sch.IsRunning()})
}

// StartStop godoc
// @Summary     Control maintenance
// @Description Starts or stops the history maintenance job.
// @Tags        maintenance
// @Accept      json
// @Produce     json
// @Param       request body request.SchedulerRequest true "Action (start|stop)"
// @Success     200 {object} response.SchedulerStatusResponse
// @Failure     400 {object} response.ErrorResponse
// @Failure     503 {object} response.ErrorResponse
// @Router      /maintenance [post]
func (h *MaintenanceHandler) StartStop(w http.ResponseWriter, r *http.Request) {
	var req request.SchedulerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var err error
	var msg string
	switch req.Action {
	case "start":
		err, msg = h.sch.Start(), "maintenance started"
	case "stop":
		err, msg = h.sch.Stop(), "maintenance stopped"
	default:
		response.RespondError(w, http.StatusBadRequest, "action must be 'start' or 'stop'")
		return
	}
	if err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, response.SchedulerStatusPayload{
		Running: h.sch.IsRunning(),
		Message: msg,
	})
}
