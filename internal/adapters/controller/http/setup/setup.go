package setup

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"github.com/planloop/planloop/cmd/app"
	"github.com/planloop/planloop/internal/adapters/controller/http/handlers"
	"github.com/planloop/planloop/internal/adapters/controller/http/middlewares"
	"github.com/planloop/planloop/internal/adapters/database/postgres"
	"github.com/planloop/planloop/internal/domain/service"
)

// Setup wires storages, services and handlers onto a gin engine and starts the
// background schedulers.
func Setup(a *app.App) *gin.Engine {
	userStorage := postgres.NewUserStorage(a.DB)
	organizationStorage := postgres.NewOrganizationStorage(a.DB)
	workspaceStorage := postgres.NewWorkspaceStorage(a.DB)
	planStorage := postgres.NewPlanStorage(a.DB)
	postStorage := postgres.NewPostStorage(a.DB)
	commentStorage := postgres.NewCommentStorage(a.DB)
	connectionStorage := postgres.NewConnectionStorage(a.DB)
	notificationStorage := postgres.NewNotificationStorage(a.DB)

	authService := service.NewAuthService(
		userStorage,
		a.Redis.Sessions,
		viper.GetString("service.auth.secret"),
		viper.GetDuration("service.auth.session-ttl"),
	)
	notifyService := service.NewNotifyService(a.Gateway, connectionStorage, workspaceStorage, a.Logger)
	connectionService := service.NewConnectionService(connectionStorage)
	userService := service.NewUserService(userStorage)
	organizationService := service.NewOrganizationService(organizationStorage, a.Redis.Codes, a.Mailer)
	workspaceService := service.NewWorkspaceService(workspaceStorage)
	sessionService := service.NewSessionService(userStorage, organizationService, workspaceService)
	planService := service.NewPlanService(planStorage, notifyService)
	postService := service.NewPostService(postStorage, notifyService)
	commentService := service.NewCommentService(commentStorage)
	activityService := service.NewActivityService(planStorage, postStorage, organizationStorage, workspaceStorage)
	notificationService := service.NewNotificationService(notificationStorage, connectionStorage, notifyService)
	reminderService := service.NewReminderService(planStorage, notificationStorage, connectionStorage, notifyService, a.Logger)

	reminderService.StartScheduler()

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	websocketHandler := handlers.NewWebsocketHandler(a.Gateway, connectionService, notifyService, a.Logger)
	planHandler := handlers.NewPlanHandler(planService)
	postHandler := handlers.NewPostHandler(postService)
	commentHandler := handlers.NewCommentHandler(commentService)
	activityHandler := handlers.NewActivityHandler(activityService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	workspaceHandler := handlers.NewWorkspaceHandler(workspaceService, planService, postService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, notifyService)

	if !viper.GetBool("settings.debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())

	engine.POST("/auth/register", authHandler.Register)
	engine.POST("/auth/login", authHandler.Login)

	authorized := engine.Group("", middlewares.Authorized(authService))
	{
		authorized.POST("/auth/logout", authHandler.Logout)
		authorized.GET("/session", sessionHandler.GetSession)
		authorized.GET("/ws", websocketHandler.Serve)
		authorized.POST("/websockets/revoke/all", websocketHandler.RevokeAll)

		authorized.GET("/users/me", userHandler.GetMe)
		authorized.PUT("/users/me", userHandler.UpdateMe)
		authorized.POST("/users/:id/ban", userHandler.Ban)

		authorized.GET("/activities", activityHandler.GetActivities)

		plans := authorized.Group("/plans")
		{
			plans.POST("", planHandler.Create)
			plans.GET("", planHandler.GetMine)
			plans.GET("/:id", planHandler.Get)
			plans.GET("/:id/qr", planHandler.GetQR)
			plans.PUT("/:id", planHandler.Update)
			plans.DELETE("/:id", planHandler.Delete)
		}

		posts := authorized.Group("/posts")
		{
			posts.POST("", postHandler.Create)
			posts.GET("", postHandler.GetMine)
			posts.GET("/:id", postHandler.Get)
			posts.PUT("/:id", postHandler.Update)
			posts.DELETE("/:id", postHandler.Delete)
		}

		comments := authorized.Group("/comments")
		{
			comments.POST("", commentHandler.Create)
			comments.GET("", commentHandler.GetByParent)
			comments.PUT("/:id", commentHandler.Update)
			comments.DELETE("/:id", commentHandler.Delete)
		}

		organizations := authorized.Group("/organizations")
		{
			organizations.POST("", organizationHandler.Create)
			organizations.GET("", organizationHandler.GetMine)
			organizations.GET("/:id", organizationHandler.Get)
			organizations.PUT("/:id", organizationHandler.Update)
			organizations.DELETE("/:id", organizationHandler.Delete)
			organizations.POST("/:id/invite", organizationHandler.Invite)
			organizations.POST("/invites/accept", organizationHandler.AcceptInvite)
			organizations.DELETE("/:id/members", organizationHandler.RemoveMember)
		}

		workspaces := authorized.Group("/workspaces")
		{
			workspaces.POST("", workspaceHandler.Create)
			workspaces.GET("", workspaceHandler.GetByOrganization)
			workspaces.GET("/:id", workspaceHandler.Get)
			workspaces.PUT("/:id", workspaceHandler.Update)
			workspaces.DELETE("/:id", workspaceHandler.Delete)
			workspaces.GET("/:id/members", workspaceHandler.GetMembers)
			workspaces.POST("/:id/members", workspaceHandler.AddMember)
			workspaces.DELETE("/:id/members", workspaceHandler.RemoveMember)
			workspaces.GET("/:id/plans", workspaceHandler.GetPlans)
			workspaces.GET("/:id/posts", workspaceHandler.GetPosts)
		}

		notifications := authorized.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetActive)
			notifications.POST("/broadcast", notificationHandler.Broadcast)
			notifications.POST("/:id/dismiss", notificationHandler.Dismiss)
			notifications.POST("/dismissAll", notificationHandler.DismissAll)
		}
	}

	return engine
}
