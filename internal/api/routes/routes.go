package routes

import (
	"transparencia-salud-server/internal/api/handlers"
	"transparencia-salud-server/internal/api/middleware"
	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/s3"
	"transparencia-salud-server/internal/socket"
	"transparencia-salud-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Cookie lifetime of the page-flow session, in seconds.
const cookieMaxAge = 1800

// SetupRouter wires handlers, middleware and templates. uploader may be nil
// when report publishing is not configured.
func SetupRouter(
	st store.Store,
	tokens *auth.TokenIssuer,
	hub *socket.Hub,
	uploader *s3.Uploader,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "./web/static")

	sessions := &middleware.SessionResolver{Store: st, Tokens: tokens}

	userHandler := &handlers.UserHandler{Store: st, Tokens: tokens, CookieMaxAge: cookieMaxAge}
	panelHandler := &handlers.PanelHandler{Store: st, Sessions: sessions}
	hospitalHandler := &handlers.HospitalHandler{Store: st, Hub: hub}
	reportHandler := &handlers.ReportHandler{Store: st, Uploader: uploader}
	webSocketHandler := &handlers.WebSocketHandler{Hub: hub, Tokens: tokens}

	// === SERVER-RENDERED PAGES (cookie session) ===
	router.GET("/", panelHandler.Index)
	router.GET("/login", userHandler.LoginPage)
	router.POST("/login", userHandler.Login)
	router.GET("/registro", userHandler.RegistroPage)
	router.POST("/registro", userHandler.Registro)
	router.GET("/logout", userHandler.Logout)
	router.GET("/panel", panelHandler.Panel)

	// === LEDGER MUTATIONS (JSON, active authenticated users) ===
	protected := router.Group("/")
	protected.Use(sessions.Authenticate())
	protected.Use(middleware.RequireActive())
	{
		protected.POST("/agregar_hospital", hospitalHandler.Agregar)
		protected.PUT("/actualizar_hospital/:id", hospitalHandler.Actualizar)
		protected.DELETE("/eliminar_hospital/:id", hospitalHandler.Eliminar)
	}

	apiV1 := router.Group("/api/v1")
	{
		// Public transparency data, no JWT required
		apiV1.GET("/hospitales", hospitalHandler.Listar)
		apiV1.GET("/resumen", hospitalHandler.Resumen)

		// WebSocket for live dashboard updates (token via query param)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// Report publishing requires an active account
		reportes := apiV1.Group("/")
		reportes.Use(sessions.Authenticate())
		reportes.Use(middleware.RequireActive())
		{
			reportes.POST("/reportes", reportHandler.Publicar)
		}

		// Administrative endpoints require the es_admin flag
		admin := apiV1.Group("/admin")
		admin.Use(sessions.Authenticate())
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/usuarios", userHandler.ListarUsuarios)
		}
	}

	return router
}
