package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"cardtime.app/cardtime/core"
	"cardtime.app/cardtime/infrastructure/communication"
	"cardtime.app/cardtime/infrastructure/devops"
	"cardtime.app/cardtime/infrastructure/filesystem"
	"cardtime.app/cardtime/infrastructure/push"
	"cardtime.app/cardtime/security"
	"cardtime.app/cardtime/web/handlers"
	"cardtime.app/cardtime/web/i18n"
	"cardtime.app/cardtime/web/middlewares"
)

type serverDeps struct {
	cfg      *devops.Config
	dm       *core.DatabaseManager
	hub      *push.Hub
	catalog  *i18n.Catalog
	store    filesystem.BlobStore
	mailer   communication.Mailer
	notifier *communication.Slack
	tokens   security.TokenSettings
	baseURL  string
}

func buildRouter(deps *serverDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middlewares.Recovery(deps.notifier))

	sessionStore := cookie.NewStore([]byte(deps.cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   deps.cfg.Session.MaxAge,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions(deps.cfg.Session.CookieName, sessionStore))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	account := r.Group("/account")
	{
		account.POST("/signin", handlers.SignInHandler(deps.dm, deps.cfg.Salt))
		account.POST("/signout", handlers.SignOutHandler())
		account.POST("/signup", handlers.SignUpHandler(deps.dm, deps.cfg.Salt))
		account.POST("/forgotpassword", handlers.ForgotPasswordHandler(deps.dm, deps.mailer, deps.cfg.Mail.Sender, deps.baseURL))
		account.POST("/resetpassword", handlers.ResetPasswordHandler(deps.dm, deps.cfg.Salt))
		account.POST("/setlanguage", handlers.SetLanguageHandler(deps.catalog))
		account.GET("/messages", handlers.MessagesHandler(deps.catalog))
	}

	// Punch devices authenticate with a bearer token minted by /gettoken.
	device := r.Group("/api")
	device.Use(middlewares.Authentication(deps.tokens))
	{
		device.POST("/punchin/:cardNo", handlers.PunchInHandler(deps.dm, deps.hub))
	}

	protected := r.Group("/")
	protected.Use(middlewares.Authentication(deps.tokens))
	{
		protected.GET("/account/gettoken", handlers.GetTokenHandler(deps.tokens))

		protected.GET("/sidebar", handlers.SidebarHandler(deps.dm))
		protected.GET("/languages", handlers.LanguagesHandler(deps.dm))

		user := protected.Group("/user")
		{
			user.GET("/columns", handlers.UserColumnsHandler(deps.catalog))
			user.POST("/data", handlers.UserDataHandler(deps.dm))
			user.GET("/details/:id", handlers.UserDetailsHandler(deps.dm))
			user.POST("/edit", handlers.UserEditHandler(deps.dm, deps.cfg.Salt))
			user.POST("/delete/:id", handlers.UserDeleteHandler(deps.dm))
		}

		card := protected.Group("/card")
		{
			card.GET("/columns", handlers.CardColumnsHandler(deps.catalog))
			card.POST("/data", handlers.CardDataHandler(deps.dm))
			card.POST("/edit", handlers.CardEditHandler(deps.dm))
			card.POST("/delete/:id", handlers.CardDeleteHandler(deps.dm))
		}

		timesheet := protected.Group("/timesheet")
		{
			timesheet.GET("/columns", handlers.TimeSheetColumnsHandler(deps.catalog))
			timesheet.POST("/data", handlers.TimeSheetDataHandler(deps.dm))
			timesheet.GET("/export/csv", handlers.ExportCSVHandler(deps.dm))
			timesheet.GET("/export/pdf", handlers.ExportPDFHandler(deps.dm, deps.cfg, deps.catalog))
			timesheet.GET("/export/xlsx", handlers.ExportXLSXHandler(deps.dm))
			timesheet.POST("/import", handlers.ImportPunchesHandler(deps.dm, deps.hub))
		}

		streaming := protected.Group("/streaming")
		{
			streaming.POST("/upload", handlers.UploadHandler(deps.dm, deps.store, deps.cfg.Storage.MaxSizeMB))
			streaming.GET("/download/:id", handlers.DownloadHandler(deps.dm, deps.store))
		}

		protected.GET("/ws", handlers.SocketHandler(deps.hub))
	}

	return r
}
