package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"firing_curve/internal/builder"
	"firing_curve/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultRoomTemp = 20

// CreateProgramRequest is the payload of POST /programs.
type CreateProgramRequest struct {
	Name string `json:"name" binding:"required" example:"Tack fuse 30cm"`
	// Room temperature in Celsius, 20 when omitted
	RoomTemp *float64 `json:"room_temp,omitempty" example:"20"`
}

// BuildProgramRequest is the payload of POST /programs/build.
type BuildProgramRequest struct {
	Name string `json:"name,omitempty" example:"Bowl"`
	builder.Params
}

// PhaseRequest is the payload of POST /programs/{id}/phases.
// Numbers must be integral.
type PhaseRequest struct {
	// Ramp velocity in °C/h, negative cools
	Velocity *float64 `json:"velocity" binding:"required" example:"300"`
	// Target temperature in Celsius
	EndTemp *float64 `json:"end_temp" binding:"required" example:"540"`
	// Minutes held at end_temp
	HoldingTime *float64 `json:"holding_time,omitempty" example:"0"`
	// Position in [0, phase_count]; appends when omitted
	Index *float64 `json:"index,omitempty" example:"1"`
}

// PhaseUpdateRequest is the payload of PATCH /programs/{id}/phases/{index}.
type PhaseUpdateRequest struct {
	Velocity    *float64 `json:"velocity,omitempty" example:"250"`
	EndTemp     *float64 `json:"end_temp,omitempty" example:"560"`
	HoldingTime *float64 `json:"holding_time,omitempty" example:"15"`
}

// @Summary      Create an empty program
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateProgramRequest  true  "Program"
// @Success      201   {object}  models.ProgramView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/programs [post]
// @Security     BearerAuth
func (h *Handler) createProgram(c *gin.Context) {
	var req CreateProgramRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	room := defaultRoomTemp
	if req.RoomTemp != nil {
		v, err := optionalInt("room_temp", req.RoomTemp)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		room = *v
	}

	v, err := h.services.Programs.Create(c.Request.Context(), req.Name, room)
	if err != nil {
		h.fail(c, "program_create_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      Build a program from the glass tables
// @Description  Derives the five standard phases for the glass, piece size and firing type.
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        body  body      BuildProgramRequest  true  "Builder parameters"
// @Success      201   {object}  models.ProgramView
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/programs/build [post]
// @Security     BearerAuth
func (h *Handler) buildProgram(c *gin.Context) {
	var req BuildProgramRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	v, err := h.services.Programs.Build(c.Request.Context(), req.Name, req.Params)
	if err != nil {
		h.fail(c, "program_build_failed", err, "glass", req.Glass)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      List programs
// @Tags         programs
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, programs"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/programs [get]
// @Security     BearerAuth
func (h *Handler) listPrograms(c *gin.Context) {
	list, err := h.services.Programs.List(c.Request.Context())
	if err != nil {
		h.fail(c, "program_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "programs": list})
}

// @Summary      Get a program with its phases
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {object}  models.ProgramView
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/programs/{id} [get]
// @Security     BearerAuth
func (h *Handler) getProgram(c *gin.Context) {
	v, err := h.services.Programs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "program_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Delete a program
// @Tags         programs
// @Param        id   path  string  true  "Program ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/programs/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteProgram(c *gin.Context) {
	if err := h.services.Programs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "program_delete_failed", err, "id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Chart series of a program
// @Description  One polyline per phase in minutes and °C, coloured from a 20-colour palette.
// @Tags         programs
// @Produce      json
// @Param        id   path      string  true  "Program ID"
// @Success      200  {object}  chart.Chart
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/programs/{id}/chart [get]
// @Security     BearerAuth
func (h *Handler) getChart(c *gin.Context) {
	ch, err := h.services.Programs.Chart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "program_chart_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, ch)
}

// @Summary      Insert a phase
// @Tags         phases
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Program ID"
// @Param        body  body      PhaseRequest  true  "Phase"
// @Success      201   {object}  models.ProgramView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/programs/{id}/phases [post]
// @Security     BearerAuth
func (h *Handler) insertPhase(c *gin.Context) {
	var req PhaseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	p, err := req.params()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	v, err := h.services.Programs.InsertPhase(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, "phase_insert_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusCreated, v)
}

// @Summary      Get a phase
// @Tags         phases
// @Produce      json
// @Param        id     path      string  true  "Program ID"
// @Param        index  path      int     true  "Phase index"
// @Success      200    {object}  curve.PhaseValues
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/programs/{id}/phases/{index} [get]
// @Security     BearerAuth
func (h *Handler) getPhase(c *gin.Context) {
	index, ok := phaseIndex(c)
	if !ok {
		return
	}
	p, err := h.services.Programs.FindPhase(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		h.fail(c, "phase_get_failed", err, "id", c.Param("id"), "index", index)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Change a phase
// @Description  Sets any of velocity, end_temp and holding_time. end_temp also moves the next phase's start.
// @Tags         phases
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Program ID"
// @Param        index  path      int                 true  "Phase index"
// @Param        body   body      PhaseUpdateRequest  true  "Fields to change"
// @Success      200    {object}  models.ProgramView
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/programs/{id}/phases/{index} [patch]
// @Security     BearerAuth
func (h *Handler) updatePhase(c *gin.Context) {
	index, ok := phaseIndex(c)
	if !ok {
		return
	}
	var req PhaseUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	u, err := req.update()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	v, err := h.services.Programs.UpdatePhase(c.Request.Context(), c.Param("id"), index, u)
	if err != nil {
		h.fail(c, "phase_update_failed", err, "id", c.Param("id"), "index", index)
		return
	}
	c.JSON(http.StatusOK, v)
}

// @Summary      Remove a phase
// @Tags         phases
// @Produce      json
// @Param        id     path      string  true  "Program ID"
// @Param        index  path      int     true  "Phase index"
// @Success      200    {object}  models.ProgramView
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/programs/{id}/phases/{index} [delete]
// @Security     BearerAuth
func (h *Handler) removePhase(c *gin.Context) {
	index, ok := phaseIndex(c)
	if !ok {
		return
	}
	v, err := h.services.Programs.RemovePhase(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		h.fail(c, "phase_remove_failed", err, "id", c.Param("id"), "index", index)
		return
	}
	c.JSON(http.StatusOK, v)
}

// phaseIndex parses the :index path parameter, answering 400 when it is not an integer.
func phaseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(c.Param("index")))
	if err != nil {
		badRequest(c, "phase index must be an integer")
		return 0, false
	}
	return index, true
}

func (r PhaseRequest) params() (service.PhaseParams, error) {
	velocity, err := optionalInt("velocity", r.Velocity)
	if err != nil {
		return service.PhaseParams{}, err
	}
	endTemp, err := optionalInt("end_temp", r.EndTemp)
	if err != nil {
		return service.PhaseParams{}, err
	}
	hold, err := optionalInt("holding_time", r.HoldingTime)
	if err != nil {
		return service.PhaseParams{}, err
	}
	index, err := optionalInt("index", r.Index)
	if err != nil {
		return service.PhaseParams{}, err
	}

	p := service.PhaseParams{Velocity: *velocity, EndTemp: *endTemp, Index: index}
	if hold != nil {
		p.HoldingTime = *hold
	}
	return p, nil
}

func (r PhaseUpdateRequest) update() (service.PhaseUpdate, error) {
	var (
		u   service.PhaseUpdate
		err error
	)
	if u.Velocity, err = optionalInt("velocity", r.Velocity); err != nil {
		return service.PhaseUpdate{}, err
	}
	if u.EndTemp, err = optionalInt("end_temp", r.EndTemp); err != nil {
		return service.PhaseUpdate{}, err
	}
	if u.HoldingTime, err = optionalInt("holding_time", r.HoldingTime); err != nil {
		return service.PhaseUpdate{}, err
	}
	return u, nil
}
