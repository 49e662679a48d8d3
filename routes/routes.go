package routes

import (
	"time"

	"travelhub/handlers"
	"travelhub/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const adminRole = "admin"

// bookingRoutes is the handler set every bookable vertical exposes.
type bookingRoutes interface {
	Book(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
}

func registerBookings(g *gin.RouterGroup, hb *handlers.HandlerBundle, service string, h bookingRoutes) {
	book := middleware.RequireAccess(hb.Issuer, service, "book")
	g.POST("/book", book, h.Book)
	g.GET("/bookings", book, h.List)
	g.GET("/bookings/:partnerOrderId", book, h.Get)
}

func registerRatings(g *gin.RouterGroup, hb *handlers.HandlerBundle, service string, h *handlers.RatingHandler) {
	read := middleware.RequireAccess(hb.Issuer, service, "read")
	rate := middleware.RequireAccess(hb.Issuer, service, "rate", adminRole)
	g.POST("/rating", rate, h.Rate)
	g.PUT("/structure", rate, h.PutStructure)
	g.GET("/rating", read, h.GetAll)
	g.GET("/rating/:id", read, h.GetOne)
	g.GET("/structure", read, h.GetStructure)
}

// inventoryRoutes is the handler set of an admin-managed catalogue.
type inventoryRoutes interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	UploadImage(c *gin.Context)
}

func registerInventory(g *gin.RouterGroup, hb *handlers.HandlerBundle, service string, h inventoryRoutes) {
	read := middleware.RequireAccess(hb.Issuer, service, "read")
	g.GET("", read, h.List)
	g.GET("/:id", read, h.Get)

	admin := g.Group("/admin", middleware.RequireAccess(hb.Issuer, service, "manage", adminRole))
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
	admin.POST("/:id/images", h.UploadImage)
}

// RegisterHotelRoutes registers hotel search, rating and booking endpoints.
func RegisterHotelRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	g := api.Group("/hotel")
	read := middleware.RequireAccess(hb.Issuer, "hotel", "read")
	g.GET("/search", read, hb.Search.SearchHotels)
	g.GET("/search/filter", read, hb.Search.FilterHotels)
	g.GET("/info/:id", read, hb.Search.HotelInfo)
	registerRatings(g, hb, "hotel", hb.HotelRatings)
	registerBookings(g, hb, "hotel", hb.HotelBookings)
}

func RegisterActivityRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	g := api.Group("/activity")
	read := middleware.RequireAccess(hb.Issuer, "activity", "read")
	g.GET("/search", read, hb.Search.SearchActivities)
	g.GET("/search/filter", read, hb.Search.FilterActivities)
	registerRatings(g, hb, "activity", hb.ActivityRatings)
	registerBookings(g, hb, "activity", hb.ActivityBookings)
}

func RegisterTransferRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	g := api.Group("/transfer", middleware.RequireAccess(hb.Issuer, "transfer", "read"))
	g.GET("/search", hb.Search.SearchTransfers)
	g.GET("/search/filter", hb.Search.FilterTransfers)
	g.GET("/countries", hb.Search.TransferCountries)
	g.GET("/terminals", hb.Search.TransferTerminals)
}

func RegisterPackageRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	cruise := api.Group("/cruise")
	registerBookings(cruise, hb, "cruise", hb.CruiseBookings)
	registerInventory(cruise, hb, "cruise", hb.Cruises)

	holiday := api.Group("/holiday")
	registerBookings(holiday, hb, "holiday", hb.HolidayBookings)
	registerInventory(holiday, hb, "holiday", hb.Holidays)
}

func RegisterInsuranceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	g := api.Group("/insurance")
	read := middleware.RequireAccess(hb.Issuer, "insurance", "read")
	g.GET("/plans", read, hb.InsurancePlans.List)
	g.GET("/plans/:id", read, hb.InsurancePlans.Get)
	g.GET("/config", read, hb.InsuranceConfig.Get)
	registerBookings(g, hb, "insurance", hb.InsuranceBookings)

	admin := g.Group("/admin", middleware.RequireAccess(hb.Issuer, "insurance", "manage", adminRole))
	admin.POST("/plans", hb.InsurancePlans.Create)
	admin.PUT("/plans/:id", hb.InsurancePlans.Update)
	admin.DELETE("/plans/:id", hb.InsurancePlans.Delete)
	admin.PUT("/config", hb.InsuranceConfig.Replace)
	admin.GET("/config/history", hb.InsuranceConfig.History)
}

func RegisterManagerRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	g := api.Group("/managers", middleware.RequireAccess(hb.Issuer, "manager", "manage", adminRole))
	g.PUT("/:id", hb.Managers.Upsert)
	g.GET("/:id", hb.Managers.Get)
	g.GET("", hb.Managers.List)
}

// RegisterHealthRoutes registers the unauthenticated health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
	r.GET("/metrics", gin.WrapH(hb.Metrics))
}

// RegisterRoutes centralizes registration of all endpoints and CORS.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	RegisterHotelRoutes(api, hb)
	RegisterActivityRoutes(api, hb)
	RegisterTransferRoutes(api, hb)
	RegisterPackageRoutes(api, hb)
	RegisterInsuranceRoutes(api, hb)
	RegisterManagerRoutes(api, hb)
	RegisterHealthRoutes(r, hb)
}
