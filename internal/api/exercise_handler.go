package api

import (
	"fmt"
	"net/http"
	"strconv"

	"fitbuilder/server/internal/catalog"
	"fitbuilder/server/internal/domain"
	"fitbuilder/server/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the exercise catalog.
type ExerciseHandler struct {
	catalogService service.CatalogService
}

func NewExerciseHandler(catalogService service.CatalogService) *ExerciseHandler {
	return &ExerciseHandler{catalogService: catalogService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for adding an exercise to
// the session catalog. Enum values are checked by the domain so every
// failing field is reported at once.
type CreateExerciseRequest struct {
	Name         string   `json:"name"`
	MuscleGroup  string   `json:"muscleGroup"`
	Equipment    string   `json:"equipment"`
	Difficulty   string   `json:"difficulty"`
	Location     string   `json:"location"`
	Instructions []string `json:"instructions"`
	Tips         []string `json:"tips"`
	VideoURL     string   `json:"videoUrl" binding:"omitempty"`
}

func (r CreateExerciseRequest) toDomain() domain.Exercise {
	return domain.Exercise{
		Name:         r.Name,
		MuscleGroup:  domain.MuscleGroup(r.MuscleGroup),
		Equipment:    domain.Equipment(r.Equipment),
		Difficulty:   domain.Difficulty(r.Difficulty),
		Location:     domain.Location(r.Location),
		Instructions: r.Instructions,
		Tips:         r.Tips,
		VideoURL:     r.VideoURL,
	}
}

type MediaUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List catalog exercises
// @Description Returns the exercises matching every active facet. An empty facet or "all" does not constrain.
// @Tags Exercises
// @Produce json
// @Param muscleGroup query string false "Muscle group"
// @Param equipment query string false "Equipment"
// @Param location query string false "Home, Gym or Both"
// @Param difficulty query string false "Difficulty"
// @Param search query string false "Case-insensitive name substring"
// @Success 200 {object} service.ExerciseList
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	list, err := h.catalogService.ListExercises(c.Request.Context(), catalog.ParseFacets(c.Request.URL.Query()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetExercise godoc
// @Summary Get one catalog exercise
// @Tags Exercises
// @Produce json
// @Param exerciseId path int true "Exercise ID"
// @Success 200 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid exercise ID"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}
	ex, err := h.catalogService.GetExercise(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ex)
}

// CreateExercise godoc
// @Summary Add an exercise to the catalog
// @Description The exercise lives until the server restarts.
// @Tags Exercises
// @Accept json
// @Produce json
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ex, err := h.catalogService.AddExercise(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ex)
}

// CreateMediaUploadURL godoc
// @Summary Get a presigned URL for uploading exercise media
// @Tags Exercises
// @Accept json
// @Produce json
// @Param upload body MediaUploadRequest true "File details"
// @Success 200 {object} MediaUploadResponse
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /exercises/media [post]
func (h *ExerciseHandler) CreateMediaUploadURL(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	url, err := h.catalogService.MediaUploadURL(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MediaUploadResponse{UploadURL: url})
}
