package router

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/handler"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB               *gorm.DB
	JWTSecret        string
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	WorkspaceHandler *handler.WorkspaceHandler
	TeamHandler      *handler.TeamHandler
	BountyHandler    *handler.BountyHandler
	KanbanHandler    *handler.KanbanHandler
	TaskHandler      *handler.TaskHandler
	ChatHandler      *handler.ChatHandler
	DashboardHandler *handler.DashboardHandler
	UploadHandler    *handler.UploadHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api/v1")

	// Public routes (no auth)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", deps.AuthHandler.SignUp)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB))
	{
		authed.GET("/auth/me", deps.AuthHandler.GetMe)

		// Users
		users := authed.Group("/users")
		{
			users.GET("", deps.UserHandler.List)
			users.GET("/search", deps.UserHandler.Search)
			users.GET("/:id", deps.UserHandler.Get)
		}

		// Workspaces + team
		workspaces := authed.Group("/workspaces")
		{
			workspaces.POST("", deps.WorkspaceHandler.Create)
			workspaces.GET("/mine", deps.WorkspaceHandler.GetMine)
			workspaces.GET("/search", deps.WorkspaceHandler.Search)
			workspaces.PUT("/:id", deps.WorkspaceHandler.Update)
			workspaces.DELETE("/:id", deps.WorkspaceHandler.Delete)

			workspaces.POST("/:id/invitations", deps.TeamHandler.Invite)
			workspaces.GET("/:id/members", deps.TeamHandler.ListMembers)
			workspaces.GET("/:id/members/:user_id/role", deps.TeamHandler.GetMemberRole)
			workspaces.PUT("/:id/members/:user_id", deps.TeamHandler.UpdateMember)
			workspaces.DELETE("/:id/members/:user_id", deps.TeamHandler.RemoveMember)
			workspaces.DELETE("/:id/members", deps.TeamHandler.RemoveAllMembers)
		}
		authed.POST("/invitations/accept", deps.TeamHandler.Accept)

		// Bounties
		bounties := authed.Group("/bounties")
		{
			bounties.POST("", deps.BountyHandler.Create)
			bounties.GET("", deps.BountyHandler.List)
			bounties.GET("/created", deps.BountyHandler.ListCreated)
			bounties.GET("/:id", deps.BountyHandler.Get)
			bounties.PUT("/:id", deps.BountyHandler.Update)
			bounties.PUT("/:id/status", deps.BountyHandler.UpdateStatus)
			bounties.DELETE("/:id", deps.BountyHandler.Delete)
			bounties.DELETE("", deps.BountyHandler.DeleteAllCreated)
			bounties.POST("/:id/participants", deps.BountyHandler.Join)
			bounties.DELETE("/:id/participants", deps.BountyHandler.Leave)
		}

		// Kanban boards
		boards := authed.Group("/boards")
		{
			boards.POST("", deps.KanbanHandler.Create)
			boards.GET("/mine", deps.KanbanHandler.GetMine)
			boards.GET("/:id", deps.KanbanHandler.Get)
			boards.DELETE("/:id", deps.KanbanHandler.Delete)
		}

		// Tasks
		tasks := authed.Group("/tasks")
		{
			tasks.POST("", deps.TaskHandler.Create)
			tasks.GET("", deps.TaskHandler.List)
			tasks.GET("/:id", deps.TaskHandler.Get)
			tasks.PUT("/:id", deps.TaskHandler.Update)
			tasks.DELETE("/:id", deps.TaskHandler.Delete)
			tasks.POST("/:id/assignees", deps.TaskHandler.AddAssignee)
			tasks.DELETE("/:id/assignees/:user_id", deps.TaskHandler.RemoveAssignee)
		}

		// Chats + messages
		chats := authed.Group("/chats")
		{
			chats.POST("", deps.ChatHandler.Create)
			chats.GET("", deps.ChatHandler.List)
			chats.GET("/find", deps.ChatHandler.Find)
			chats.GET("/:id/messages", deps.ChatHandler.ListMessages)
			chats.POST("/:id/messages", deps.ChatHandler.CreateMessage)
			chats.GET("/:id/stream", deps.ChatHandler.Stream)
			chats.DELETE("/:id", deps.ChatHandler.Delete)
		}
		authed.PUT("/messages/:id", deps.ChatHandler.EditMessage)
		authed.DELETE("/messages/:id", deps.ChatHandler.DeleteMessage)

		// Uploads
		authed.POST("/uploads", deps.UploadHandler.Upload)

		// Dashboard
		authed.GET("/dashboard/stats", deps.DashboardHandler.GetStats)
		authed.GET("/operation-logs", deps.DashboardHandler.GetOperationLogs)
	}
}
