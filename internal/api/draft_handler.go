package api

import (
	"fmt"
	"net/http"

	"fitbuilder/server/internal/service"

	"github.com/gin-gonic/gin"
)

// DraftHandler exposes the routine builder.
type DraftHandler struct {
	draftService service.DraftService
}

func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

type RenameDraftRequest struct {
	Name string `json:"name"`
}

type AddEntryRequest struct {
	ExerciseID int `json:"exerciseId" binding:"required"`
}

// UpdateEntryRequest sets one editable field. Value may be the empty string.
type UpdateEntryRequest struct {
	Field string  `json:"field" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

type ReorderRequest struct {
	SourceID string `json:"sourceId" binding:"required"`
	TargetID string `json:"targetId" binding:"required"`
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return false
	}
	return true
}

// CreateDraft godoc
// @Summary Start a new routine draft
// @Tags Drafts
// @Produce json
// @Success 201 {object} service.DraftView
// @Router /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	draft, err := h.draftService.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetDraft godoc
// @Summary Get a routine draft
// @Tags Drafts
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} service.DraftView
// @Failure 404 {object} gin.H "Draft not found"
// @Router /drafts/{draftId} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.draftService.Get(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) RenameDraft(c *gin.Context) {
	var req RenameDraftRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.Rename(c.Request.Context(), c.Param("draftId"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// AddEntry godoc
// @Summary Add a catalog exercise to a draft
// @Description Appends a snapshot of the exercise with sets 3, reps 10 and rest 60s.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param entry body AddEntryRequest true "Exercise to add"
// @Success 201 {object} domain.RoutineEntry
// @Failure 404 {object} gin.H "Draft or exercise not found"
// @Router /drafts/{draftId}/entries [post]
func (h *DraftHandler) AddEntry(c *gin.Context) {
	var req AddEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.draftService.AddExercise(c.Request.Context(), c.Param("draftId"), req.ExerciseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry godoc
// @Summary Edit sets, reps, restTime or notes of a draft entry
// @Tags Drafts
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param entryId path string true "Entry ID"
// @Param update body UpdateEntryRequest true "Field and value"
// @Success 200 {object} service.DraftView
// @Failure 400 {object} gin.H "Unknown field"
// @Failure 404 {object} gin.H "Draft or entry not found"
// @Router /drafts/{draftId}/entries/{entryId} [patch]
func (h *DraftHandler) UpdateEntry(c *gin.Context) {
	var req UpdateEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.UpdateField(c.Request.Context(), c.Param("draftId"), c.Param("entryId"), req.Field, *req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *DraftHandler) RemoveEntry(c *gin.Context) {
	draft, err := h.draftService.RemoveEntry(c.Request.Context(), c.Param("draftId"), c.Param("entryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ReorderEntries godoc
// @Summary Move an entry to the position of another
// @Description An unknown entry ID leaves the order unchanged and returns 404.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param move body ReorderRequest true "Source and target entry IDs"
// @Success 200 {object} service.DraftView
// @Router /drafts/{draftId}/reorder [post]
func (h *DraftHandler) ReorderEntries(c *gin.Context) {
	var req ReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.draftService.Reorder(c.Request.Context(), c.Param("draftId"), req.SourceID, req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveDraft godoc
// @Summary Save a draft as a routine
// @Description Guests save to the local store, signed-in users to the server store. The draft is discarded on success.
// @Tags Drafts
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 201 {object} RoutineResponse
// @Failure 400 {object} gin.H "Name or exercises missing"
// @Failure 404 {object} gin.H "Draft not found"
// @Router /drafts/{draftId}/save [post]
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	saved, err := h.draftService.Save(c.Request.Context(), identityFromContext(c), c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRoutineToResponse(saved))
}

func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	if err := h.draftService.Discard(c.Request.Context(), c.Param("draftId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
