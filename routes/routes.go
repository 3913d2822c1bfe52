package routes

import (
	"net/http"
	"time"

	"tourhub/handlers"
	"tourhub/middleware"
	"tourhub/services/authz"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers cookie issue/clear endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/jwt", hb.IssueTokenHandler)
	r.GET("/logOut", hb.LogoutHandler)
}

// RegisterUserRoutes registers registration, guide application and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.SessionAuth(hb.Sessions)

	r.POST("/users", hb.CreateUserHandler)
	r.GET("/users/role/:email", hb.GetUserRoleHandler)
	r.PATCH("/users/profile/:email", auth, hb.UpdateProfileHandler)
	r.PATCH("/users/:email", auth, middleware.RequireRole(hb.Resolver, authz.RequireTourist), hb.ApplyForGuideHandler)
	r.GET("/api/guides/random", hb.RandomGuidesHandler)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("")
	{
		admin.Use(middleware.SessionAuth(hb.Sessions), middleware.RequireRole(hb.Resolver, authz.RequireAdmin))
		admin.GET("/manage-candidates", hb.ListCandidatesHandler)
		admin.PATCH("/manage-candidates/:email", hb.DecideCandidateHandler)
		admin.GET("/all-users/:email", hb.ListAllUsersHandler)
		admin.DELETE("/user/:id", hb.DeleteUserHandler)
		admin.POST("/packages", hb.CreatePackageHandler)
		admin.GET("/api/admin/stats", hb.AdminStatsHandler)
	}
}

// RegisterPackageRoutes registers the public package catalogue.
func RegisterPackageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/packages", hb.ListPackagesHandler)
	api := r.Group("/api/packages")
	{
		api.GET("", hb.ListPackagesHandler)
		api.GET("/random", hb.RandomPackagesHandler)
		api.GET("/:id", hb.GetPackageHandler)
	}
}

// RegisterBookingRoutes sets up booking, payment and assigned tour endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.SessionAuth(hb.Sessions)
	tourist := middleware.RequireRole(hb.Resolver, authz.RequireTourist)
	guide := middleware.RequireRole(hb.Resolver, authz.RequireGuide)

	r.POST("/bookings", auth, hb.CreateBookingHandler)
	r.GET("/bookings/:email", auth, hb.ListBookingsHandler)
	r.DELETE("/bookings/:id", auth, hb.DeleteBookingHandler)
	r.PATCH("/bookings/payment/:id", auth, hb.PatchBookingPaymentHandler)

	r.POST("/create-payment-intent", auth, hb.CreatePaymentIntentHandler)
	r.POST("/payments", hb.RecordPaymentHandler)

	r.GET("/my-orders/:email", auth, tourist, hb.MyOrdersHandler)
	r.GET("/assigned-tours/:email", auth, guide, hb.AssignedToursHandler)
	r.PATCH("/assigned-tours/:id", auth, guide, hb.UpdateBookingStatusHandler)
}

// RegisterStoryRoutes registers story endpoints.
func RegisterStoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/all-stories", hb.ListAllStoriesHandler)
	r.GET("/stories", middleware.SessionAuth(hb.Sessions), hb.ListMyStoriesHandler)

	stories := r.Group("/stories")
	{
		stories.Use(middleware.SessionAuth(hb.Sessions), middleware.RequireRole(hb.Resolver, authz.RequireTouristOrGuide))
		stories.POST("", hb.CreateStoryHandler)
		stories.GET("/:id", hb.GetStoryHandler)
		stories.PATCH("/:id", hb.UpdateStoryHandler)
		stories.PATCH("/:id/images", hb.AddStoryImagesHandler)
		stories.DELETE("/:id/images", hb.RemoveStoryImageHandler)
		stories.DELETE("/:id", hb.DeleteStoryHandler)
	}
}

// RegisterUploadRoutes registers image hosting when it is configured.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.UploadImageHandler == nil {
		return
	}
	uploads := r.Group("/uploads")
	{
		uploads.Use(middleware.SessionAuth(hb.Sessions), middleware.RequireRole(hb.Resolver, authz.RequireTouristOrGuide))
		uploads.POST("/images", hb.UploadImageHandler)
		uploads.DELETE("/images", hb.DeleteImageHandler)
	}
}

// RegisterHealthRoute registers the banner and health-check endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Tourism server is running")
	})
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
	}
}

// CORSConfig allows credentialed requests from the configured frontends.
func CORSConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, origins []string) {
	if len(origins) > 0 {
		r.Use(cors.New(CORSConfig(origins)))
	}

	RegisterSessionRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterPackageRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterStoryRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
