package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fets-live/backend/config"
	"fets-live/backend/internal/api/handler"
	"fets-live/backend/internal/api/middleware"
	"fets-live/backend/internal/model"
	"fets-live/backend/internal/service"
	"fets-live/backend/pkg/jwt"
	"fets-live/backend/pkg/redis"
)

// Setup builds the gin engine. rdb may be nil.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	profiles service.ProfileService,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admins := middleware.RoleAuth(model.RoleAdmin, model.RoleSuperAdmin)

	v1 := r.Group("/api/v1")
	{
		// public
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 30, time.Minute), h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)
			authorized.POST("/staff", admins, h.Auth.CreateStaff)

			// branch context
			authorized.GET("/branch", h.Profile.GetBranchContext)
			authorized.PUT("/branch", h.Profile.SwitchBranch)

			profileRoutes := authorized.Group("/profiles")
			{
				profileRoutes.GET("/me", h.Profile.GetMyProfile)
				profileRoutes.GET("/:id", h.Profile.GetProfile)
				profileRoutes.PUT("/:id", h.Profile.UpdateProfile) // owner or admin, checked in the service
			}

			clients := authorized.Group("/clients")
			{
				clients.GET("", h.Client.ListClients)
				clients.POST("", admins, h.Client.CreateClient)
				clients.POST("/:id/exams", admins, h.Client.CreateExam)
			}
			authorized.DELETE("/client-exams/:id", admins, h.Client.DeleteExam)

			roster := authorized.Group("/leave-requests")
			{
				roster.GET("", h.Roster.ListRequests)
				roster.POST("", h.Roster.CreateRequest)
				roster.POST("/:id/approve", admins, h.Roster.ApproveRequest)
				roster.POST("/:id/reject", admins, h.Roster.RejectRequest)
			}
			authorized.PUT("/roster", admins, h.Roster.UpsertShift)
			authorized.GET("/audit", admins, h.Roster.ListAudit)

			checklists := authorized.Group("/checklists/templates")
			{
				checklists.GET("", h.Checklist.ListTemplates)
				checklists.POST("", admins, h.Checklist.CreateTemplate)
				checklists.DELETE("/:id", admins, h.Checklist.DeactivateTemplate)
			}

			posts := authorized.Group("/posts")
			{
				posts.GET("", h.Social.ListPosts)
				posts.POST("", h.Social.CreatePost)
				posts.DELETE("/:id", h.Social.DeletePost)
				posts.POST("/:id/like", h.Social.LikePost)
				posts.GET("/:id/comments", h.Social.ListComments)
				posts.POST("/:id/comments", h.Social.AddComment)
			}

			status := authorized.Group("/branch-status")
			{
				status.GET("", h.BranchStatus.ListStatuses)
				status.GET("/stream", h.BranchStatus.Stream)
				status.GET("/:branch", h.BranchStatus.GetStatus)
				status.PUT("/:branch", admins, h.BranchStatus.UpdateStatus)
			}

			device := authorized.Group("/device")
			{
				device.POST("/push", h.Device.RegisterPush)
				device.POST("/status-bar", h.Device.StatusBar)
				device.POST("/haptics", h.Device.Haptics)
			}

			// ── branch-scoped data ──
			scoped := authorized.Group("")
			scoped.Use(middleware.BranchScope(profiles))
			{
				scoped.GET("/profiles", h.Profile.ListProfiles)

				candidates := scoped.Group("/candidates")
				{
					candidates.GET("", h.Candidate.ListCandidates)
					candidates.POST("", h.Candidate.CreateCandidate)
					candidates.GET("/:id", h.Candidate.GetCandidate)
					candidates.PUT("/:id", h.Candidate.UpdateCandidate)
					candidates.PATCH("/:id/status", h.Candidate.UpdateStatus)
					candidates.DELETE("/:id", h.Candidate.DeleteCandidate)
				}

				sessions := scoped.Group("/calendar/sessions")
				{
					sessions.GET("", h.Calendar.ListSessions)
					sessions.POST("", h.Calendar.CreateSession)
					sessions.GET("/:id", h.Calendar.GetSession)
					sessions.PUT("/:id", h.Calendar.UpdateSession)
					sessions.DELETE("/:id", h.Calendar.DeleteSession)
				}

				scoped.GET("/reconciliation", h.Reconciliation.GetReport)

				incidents := scoped.Group("/incidents")
				{
					incidents.GET("/categories", h.Incident.ListCategories)
					incidents.GET("/stats", h.Incident.GetStats)
					incidents.GET("", h.Incident.ListIncidents)
					incidents.POST("", h.Incident.CreateIncident)
					incidents.GET("/:id", h.Incident.GetIncident)
					incidents.PUT("/:id", h.Incident.UpdateIncident)
					incidents.PATCH("/:id/status", h.Incident.UpdateStatus)
					incidents.DELETE("/:id", admins, h.Incident.DeleteIncident)
					incidents.GET("/:id/comments", h.Incident.ListComments)
					incidents.POST("/:id/comments", h.Incident.AddComment)
				}

				scoped.GET("/roster", h.Roster.ListShifts)

				scoped.GET("/checklists/resolve/:type", h.Checklist.ResolveTemplate)
				scoped.POST("/checklists/submissions", h.Checklist.Submit)
				scoped.GET("/checklists/submissions", h.Checklist.ListSubmissions)

				vault := scoped.Group("/vault")
				{
					vault.GET("", h.Vault.ListItems)
					vault.POST("", h.Vault.CreateItem)
					vault.GET("/:id", h.Vault.GetItem)
					vault.PUT("/:id", h.Vault.UpdateItem)
					vault.DELETE("/:id", h.Vault.DeleteItem)
				}

				scoped.POST("/assistant/chat", middleware.RateLimit(rdb, 20, time.Minute), h.Assistant.Chat)

				export := scoped.Group("/export")
				{
					export.GET("/candidates", h.Export.ExportCandidates)
					export.GET("/reconciliation", h.Export.ExportReconciliation)
					export.GET("/calendar", h.Export.ExportCalendar)
				}
			}
		}
	}

	return r
}
