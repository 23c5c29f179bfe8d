package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lendshare/internal/handler/api"
	"lendshare/internal/handler/middleware"
	"lendshare/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, userHandler *api.UserHandler, itemHandler *api.ItemHandler, bookingHandler *api.BookingHandler) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, userHandler, itemHandler, bookingHandler)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil))
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, userHandler *api.UserHandler, itemHandler *api.ItemHandler, bookingHandler *api.BookingHandler) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	users := engine.Group("/users")
	{
		addRoutes(users, []route{
			{Method: http.MethodPost, Path: "", Handler: userHandler.CreateUser},
			{Method: http.MethodGet, Path: "", Handler: userHandler.ListUsers},
			{Method: http.MethodGet, Path: "/:userId", Handler: userHandler.GetUser},
			{Method: http.MethodPatch, Path: "/:userId", Handler: userHandler.UpdateUser},
			{Method: http.MethodDelete, Path: "/:userId", Handler: userHandler.DeleteUser},
		})
	}

	items := engine.Group("/items")
	items.Use(middleware.RequireIdentity())
	{
		addRoutes(items, []route{
			{Method: http.MethodPost, Path: "", Handler: itemHandler.CreateItem},
			{Method: http.MethodGet, Path: "", Handler: itemHandler.GetOwnerItems},
			{Method: http.MethodGet, Path: "/search", Handler: itemHandler.SearchItems},
			{Method: http.MethodGet, Path: "/:itemId", Handler: itemHandler.GetItem},
			{Method: http.MethodPatch, Path: "/:itemId", Handler: itemHandler.UpdateItem},
			{Method: http.MethodPost, Path: "/:itemId/comment", Handler: itemHandler.AddComment},
		})
	}

	bookings := engine.Group("/bookings")
	bookings.Use(middleware.RequireIdentity())
	{
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: bookingHandler.AddBooking},
			{Method: http.MethodGet, Path: "", Handler: bookingHandler.GetBookerBookings},
			{Method: http.MethodGet, Path: "/owner", Handler: bookingHandler.GetOwnerBookings},
			{Method: http.MethodGet, Path: "/:bookingId", Handler: bookingHandler.GetBooking},
			{Method: http.MethodPatch, Path: "/:bookingId", Handler: bookingHandler.ApproveBooking},
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
