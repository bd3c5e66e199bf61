package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusStarted = "started"
	statusStopped = "stopped"
)

// StartKilnRequest is the payload of POST /kiln/start.
type StartKilnRequest struct {
	ProgramID string `json:"program_id" binding:"required" example:"3f0c2c9e-8d6b-4f57-9a0e-2f1d7d8c9b10"`
}

// respondWithStatusAndState answers with a status and, best-effort, the current run state.
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string) {
	resp := gin.H{"status": status}
	if st, err := h.services.Monitoring.GetState(c.Request.Context()); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Start running a program
// @Tags         kiln
// @Accept       json
// @Produce      json
// @Param        body  body      StartKilnRequest        true  "Program to run"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/kiln/start [post]
// @Security     BearerAuth
func (h *Handler) startKiln(c *gin.Context) {
	var req StartKilnRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Kiln.Start(c.Request.Context(), req.ProgramID); err != nil {
		h.fail(c, "kiln_start_failed", err, "program_id", req.ProgramID)
		return
	}
	h.respondWithStatusAndState(c, statusStarted)
}

// @Summary      Stop the current run
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/kiln/stop [post]
// @Security     BearerAuth
func (h *Handler) stopKiln(c *gin.Context) {
	if err := h.services.Kiln.Stop(c.Request.Context()); err != nil {
		h.fail(c, "kiln_stop_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusStopped)
}

// @Summary      Get run state
// @Tags         kiln
// @Produce      json
// @Success      200  {object}  models.KilnState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/kiln/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.fail(c, "kiln_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
