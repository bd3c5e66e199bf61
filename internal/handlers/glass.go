package handlers

import (
	"net/http"

	"firing_curve/internal/glass"

	"github.com/gin-gonic/gin"
)

// glassView adds the ovens a glass may be fired in.
type glassView struct {
	glass.Type
	Ovens []string `json:"ovens"`
}

// @Summary      List glass types
// @Description  Glass types known to the program builder with their firing temperatures.
// @Tags         glass
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, glass"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/glass [get]
// @Security     BearerAuth
func (h *Handler) listGlass(c *gin.Context) {
	types := h.services.Programs.GlassTypes()
	out := make([]glassView, 0, len(types))
	for _, t := range types {
		out = append(out, glassView{Type: t, Ovens: glass.AllowedOvens(t.Category)})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "glass": out})
}
