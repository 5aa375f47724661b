package api

import (
	"net/http"

	"fitbuilder/server/internal/metrics"
	"fitbuilder/server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the handlers' dependencies. Auth is nil when accounts are
// disabled; Registry is nil when metrics are not exposed.
type Services struct {
	Auth     service.AuthService
	Catalog  service.CatalogService
	Drafts   service.DraftService
	Routines service.RoutineService
	Metrics  *metrics.Manager
	Registry *prometheus.Registry
}

func SetupRoutes(router *gin.Engine, svc Services) {
	exerciseHandler := NewExerciseHandler(svc.Catalog)
	draftHandler := NewDraftHandler(svc.Drafts)
	routineHandler := NewRoutineHandler(svc.Routines)

	router.Use(RecoveryMiddleware(svc.Metrics), RequestLogger(), RequestMetricsMiddleware(svc.Metrics))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if svc.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Registry, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	if svc.Auth != nil {
		authHandler := NewAuthHandler(svc.Auth)
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	// Guests may use everything below; a presented token must be valid.
	open := apiV1.Group("")
	open.Use(OptionalAuthMiddleware(svc.Auth))
	{
		exerciseGroup := open.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.POST("/media", exerciseHandler.CreateMediaUploadURL)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExercise)
		}

		draftGroup := open.Group("/drafts")
		{
			draftGroup.POST("", draftHandler.CreateDraft)
			draftGroup.GET("/:draftId", draftHandler.GetDraft)
			draftGroup.DELETE("/:draftId", draftHandler.DiscardDraft)
			draftGroup.PUT("/:draftId/name", draftHandler.RenameDraft)
			draftGroup.POST("/:draftId/entries", draftHandler.AddEntry)
			draftGroup.PATCH("/:draftId/entries/:entryId", draftHandler.UpdateEntry)
			draftGroup.DELETE("/:draftId/entries/:entryId", draftHandler.RemoveEntry)
			draftGroup.POST("/:draftId/reorder", draftHandler.ReorderEntries)
			draftGroup.POST("/:draftId/save", draftHandler.SaveDraft)
		}

		routineGroup := open.Group("/routines")
		{
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.GET("/:routineId", routineHandler.GetRoutine)
			routineGroup.DELETE("/:routineId", routineHandler.DeleteRoutine)
		}

		protected := open.Group("")
		protected.Use(RequireAuthMiddleware())
		{
			protected.GET("/me", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"userId": identityFromContext(c).UserID})
			})
			protected.GET("/me/routines", routineHandler.GetMyRoutines)
		}
	}
}
