package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/handler/api"
	"leisure-booking/internal/handler/middleware"
	"leisure-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth      *api.AuthHandler
	Timetable *api.TimetableHandler
	Basket    *api.BasketHandler
	Checkout  *api.CheckoutHandler
	Bookings  *api.BookingHandler
	Admin     *api.AdminHandler
	Webhook   *api.WebhookHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		// Webhooks authenticate by signature, not session.
		apiGroup.POST("/webhooks/payment", h.Webhook.HandlePayment)

		authed := apiGroup.Group("")
		authed.Use(authMiddleware.RequireAuth())
		{
			addRoutes(authed, []route{
				{Method: http.MethodGet, Path: "/timetable", Handler: h.Timetable.Day},
				{Method: http.MethodGet, Path: "/facilities", Handler: h.Timetable.Facilities},

				{Method: http.MethodGet, Path: "/basket", Handler: h.Basket.Get},
				{Method: http.MethodPost, Path: "/basket", Handler: h.Basket.Add},
				{Method: http.MethodPost, Path: "/basket/remove", Handler: h.Basket.Remove},
				{Method: http.MethodDelete, Path: "/basket", Handler: h.Basket.Clear},

				{Method: http.MethodGet, Path: "/checkout", Handler: h.Checkout.Review},
				{Method: http.MethodPost, Path: "/checkout", Handler: h.Checkout.Confirm},

				{Method: http.MethodGet, Path: "/bookings", Handler: h.Bookings.Upcoming},
				{Method: http.MethodGet, Path: "/bookings/history", Handler: h.Bookings.History},
				{Method: http.MethodDelete, Path: "/bookings/:id", Handler: h.Bookings.Cancel},
			})
		}

		staff := apiGroup.Group("/admin")
		staff.Use(authMiddleware.RequireAuth())
		staff.Use(authMiddleware.RequireRoleAtLeast(user.RoleStaff))
		{
			addRoutes(staff, []route{
				{Method: http.MethodPut, Path: "/members/:id/membership", Handler: h.Admin.SetMembership},
			})

			adminOnly := staff.Group("")
			adminOnly.Use(authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
			addRoutes(adminOnly, []route{
				{Method: http.MethodGet, Path: "/timetable", Handler: h.Admin.ListEntries},
				{Method: http.MethodPost, Path: "/timetable", Handler: h.Admin.CreateEntry},
				{Method: http.MethodPut, Path: "/timetable/:id", Handler: h.Admin.UpdateEntry},
				{Method: http.MethodDelete, Path: "/timetable/:id", Handler: h.Admin.DeleteEntry},
				{Method: http.MethodPut, Path: "/facilities/:facility", Handler: h.Admin.SaveFacility},
			})
		}
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
