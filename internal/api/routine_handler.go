package api

import (
	"net/http"
	"time"

	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/service"

	"github.com/gin-gonic/gin"
)

// RoutineHandler serves saved routines for guests and signed-in users.
type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- DTOs ---

type RoutineEntryResponse struct {
	UniqueID string          `json:"uniqueId"`
	Exercise domain.Exercise `json:"exercise"`
	Sets     string          `json:"sets"`
	Reps     string          `json:"reps"`
	RestTime string          `json:"restTime"`
	Notes    string          `json:"notes"`
}

type RoutineResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Exercises []RoutineEntryResponse `json:"exercises"`
	CreatedAt time.Time              `json:"createdAt"`
}

// MapRoutineToResponse converts a domain.Routine to its DTO. The owner id
// stays on the server.
func MapRoutineToResponse(r *domain.Routine) RoutineResponse {
	if r == nil {
		return RoutineResponse{}
	}
	entries := make([]RoutineEntryResponse, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = RoutineEntryResponse{
			UniqueID: e.EntryID,
			Exercise: e.Exercise,
			Sets:     e.Sets,
			Reps:     e.Reps,
			RestTime: e.RestTime,
			Notes:    e.Notes,
		}
	}
	return RoutineResponse{
		ID:        r.ID,
		Name:      r.Name,
		Exercises: entries,
		CreatedAt: r.CreatedAt,
	}
}

func MapRoutinesToResponse(routines []domain.Routine) []RoutineResponse {
	responses := make([]RoutineResponse, len(routines))
	for i := range routines {
		responses[i] = MapRoutineToResponse(&routines[i])
	}
	return responses
}

// --- Handler Methods ---

// ListRoutines godoc
// @Summary List saved routines
// @Description Collection cards: the first three exercises plus a count of the rest.
// @Tags Routines
// @Produce json
// @Success 200 {array} routine.Summary
// @Router /routines [get]
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	summaries, err := h.routineService.List(c.Request.Context(), identityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetRoutine godoc
// @Summary Get a saved routine
// @Tags Routines
// @Produce json
// @Param routineId path string true "Routine ID"
// @Success 200 {object} RoutineResponse
// @Failure 404 {object} gin.H "Routine not found"
// @Router /routines/{routineId} [get]
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	r, err := h.routineService.Get(c.Request.Context(), identityFromContext(c), c.Param("routineId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRoutineToResponse(r))
}

// DeleteRoutine godoc
// @Summary Delete a saved routine
// @Description Deletion is irreversible and must be confirmed with confirm=true.
// @Tags Routines
// @Param routineId path string true "Routine ID"
// @Param confirm query bool true "Must be true"
// @Success 204 "Deleted"
// @Failure 400 {object} gin.H "Deletion not confirmed"
// @Failure 404 {object} gin.H "Routine not found"
// @Router /routines/{routineId} [delete]
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	if c.Query("confirm") != "true" {
		abortWithError(c, http.StatusBadRequest, "Deleting a routine cannot be undone; repeat the request with confirm=true")
		return
	}
	if err := h.routineService.Delete(c.Request.Context(), identityFromContext(c), c.Param("routineId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMyRoutines godoc
// @Summary List the signed-in user's server-stored routines
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RoutineResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 503 {object} gin.H "Server storage not configured"
// @Router /me/routines [get]
func (h *RoutineHandler) GetMyRoutines(c *gin.Context) {
	routines, err := h.routineService.ListServer(c.Request.Context(), identityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRoutinesToResponse(routines))
}
