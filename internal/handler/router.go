package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gst-lifecycle/internal/handler/api"
	"gst-lifecycle/internal/handler/middleware"
	"gst-lifecycle/internal/pkg/config"
	"gst-lifecycle/internal/pkg/jwt"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, documentHandler *api.DocumentHandler, taxHandler *api.TaxHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, documentHandler, taxHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, documentHandler *api.DocumentHandler, taxHandler *api.TaxHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		operator := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(jwt.RoleOperator)}

		documents := apiGroup.Group("/documents")
		addRoutes(documents, []route{
			{Method: http.MethodPost, Path: "", Handler: documentHandler.Generate, Mw: operator},
			{Method: http.MethodPost, Path: "/received", Handler: documentHandler.Receive, Mw: operator},
			{Method: http.MethodGet, Path: "/:number", Handler: documentHandler.Get},
			{Method: http.MethodGet, Path: "/:number/audit", Handler: documentHandler.ListAudit},
			{Method: http.MethodGet, Path: "/:number/audit/export", Handler: documentHandler.ExportAudit},
			{Method: http.MethodPost, Path: "/:number/accept", Handler: documentHandler.Accept, Mw: operator},
			{Method: http.MethodPost, Path: "/:number/reject", Handler: documentHandler.Reject, Mw: operator},
			{Method: http.MethodPost, Path: "/:number/vehicle", Handler: documentHandler.UpdateVehicle, Mw: operator},
			{Method: http.MethodPost, Path: "/:number/cancel", Handler: documentHandler.Cancel, Mw: operator},
			{Method: http.MethodPost, Path: "/:number/expire", Handler: documentHandler.Expire, Mw: operator},
		})

		tax := apiGroup.Group("/tax")
		addRoutes(tax, []route{
			{Method: http.MethodPost, Path: "/compute", Handler: taxHandler.Compute},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
