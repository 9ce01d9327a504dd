// Package routes binds handlers to the HTTP surface.
package routes

import (
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/district-dashboard-api/internal/handler"
)

// Handlers groups every resource handler. Realtime may be nil when the
// event stream is disabled.
type Handlers struct {
	Metrics      *handler.MetricsHandler
	Dashboard    *handler.DashboardHandler
	Entities     *handler.EntityHandler
	Views        *handler.ViewsHandler
	Intervention *handler.InterventionHandler
	Toasts       *handler.ToastHandler
	Notes        *handler.NoteHandler
	Activity     *handler.ActivityHandler
	Compare      *handler.CompareHandler
	Goals        *handler.GoalHandler
	TimeTravel   *handler.TimeTravelHandler
	ViewState    *handler.ViewStateHandler
	Exports      *handler.ExportHandler
	Admin        *handler.AdminHandler
	Realtime     *handler.RealtimeHandler
}

// Options controls prefixing and optional surfaces.
type Options struct {
	APIPrefix  string
	EnableDocs bool
}

// Register mounts probes, docs and the versioned API on r.
func Register(r *gin.Engine, h Handlers, opts Options) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if h.Realtime != nil {
		r.GET("/ws", h.Realtime.Serve)
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	prefix := "/" + strings.Trim(opts.APIPrefix, "/")
	if prefix == "/" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)

	api.GET("/metrics/summary", h.Metrics.Snapshot)
	api.GET("/dashboard", h.Dashboard.Overview)

	api.GET("/districts", h.Entities.ListDistricts)
	api.GET("/districts/:id", h.Entities.GetDistrict)
	api.GET("/schools", h.Entities.ListSchools)
	api.GET("/schools/:id", h.Entities.GetSchool)
	api.GET("/teachers", h.Entities.ListTeachers)
	api.GET("/teachers/:id", h.Entities.GetTeacher)
	api.GET("/students", h.Entities.ListStudents)
	api.GET("/students/at-risk", h.Entities.AtRisk)
	api.GET("/students/:id", h.Entities.GetStudent)
	api.GET("/skills", h.Entities.Skills)
	api.GET("/insights", h.Entities.Insights)
	api.GET("/search", h.Entities.Search)

	views := api.Group("/views")
	views.GET("/districts/:id", h.Views.District)
	views.GET("/schools/:id", h.Views.School)
	views.GET("/teachers/:id", h.Views.Teacher)
	views.GET("/students/:id", h.Views.Student)

	interventions := api.Group("/interventions")
	interventions.GET("", h.Intervention.List)
	interventions.POST("", h.Intervention.Trigger)
	interventions.GET("/types", h.Intervention.Types)
	interventions.GET("/:id", h.Intervention.Get)
	interventions.PATCH("/:id/status", h.Intervention.UpdateStatus)
	interventions.POST("/:id/cancel", h.Intervention.Cancel)

	toasts := api.Group("/toasts")
	toasts.GET("", h.Toasts.List)
	toasts.POST("", h.Toasts.Create)
	toasts.DELETE("/:id", h.Toasts.Dismiss)

	notes := api.Group("/notes")
	notes.GET("", h.Notes.List)
	notes.POST("", h.Notes.Create)
	notes.POST("/:id/pin", h.Notes.TogglePin)
	notes.DELETE("/:id", h.Notes.Delete)

	activity := api.Group("/activity")
	activity.GET("", h.Activity.List)
	activity.POST("", h.Activity.Create)
	activity.GET("/unread-count", h.Activity.UnreadCount)
	activity.POST("/read-all", h.Activity.MarkAllAsRead)
	activity.POST("/:id/read", h.Activity.MarkAsRead)
	activity.DELETE("/:id", h.Activity.Remove)

	compare := api.Group("/compare")
	compare.GET("", h.Compare.State)
	compare.POST("", h.Compare.Add)
	compare.DELETE("", h.Compare.Clear)
	compare.PUT("/drawer", h.Compare.SetDrawer)
	compare.DELETE("/:id", h.Compare.Remove)

	goals := api.Group("/goals")
	goals.GET("", h.Goals.List)
	goals.POST("", h.Goals.Create)
	goals.GET("/:id", h.Goals.Get)
	goals.PATCH("/:id/progress", h.Goals.UpdateProgress)
	goals.DELETE("/:id", h.Goals.Delete)

	timeTravel := api.Group("/time-travel")
	timeTravel.GET("", h.TimeTravel.State)
	timeTravel.POST("/play", h.TimeTravel.Play)
	timeTravel.POST("/pause", h.TimeTravel.Pause)
	timeTravel.POST("/next", h.TimeTravel.Next)
	timeTravel.POST("/prev", h.TimeTravel.Prev)
	timeTravel.POST("/reset", h.TimeTravel.Reset)
	timeTravel.PUT("/date", h.TimeTravel.SetDate)
	timeTravel.GET("/history/:entityId", h.TimeTravel.History)

	commandBar := api.Group("/command-bar")
	commandBar.GET("", h.ViewState.CommandBar)
	commandBar.POST("/open", h.ViewState.OpenCommandBar)
	commandBar.POST("/close", h.ViewState.CloseCommandBar)
	commandBar.POST("/toggle", h.ViewState.ToggleCommandBar)
	commandBar.PUT("/query", h.ViewState.SetQuery)

	transition := api.Group("/transition")
	transition.GET("", h.ViewState.Transition)
	transition.POST("/start", h.ViewState.StartTransition)
	transition.POST("/end", h.ViewState.EndTransition)

	exports := api.Group("/exports")
	exports.POST("", h.Exports.Generate)
	exports.GET("/:token", h.Exports.Download)

	api.POST("/admin/seed/reload", h.Admin.ReloadSeed)
}
