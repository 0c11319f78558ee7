package routes

import (
	"net/http"
	"time"

	"clinicportal/handlers"
	"clinicportal/middleware"
	"clinicportal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers the public availability endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/appointments", hb.Appointments.GetAppointments)
	r.GET("/specialty", hb.Appointments.GetSpecialties)
}

// RegisterBookingRoutes registers admission (public) and booking queries
// (authenticated).
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/bookings", hb.Bookings.CreateBooking)

	authed := r.Group("/bookings")
	authed.Use(middleware.JWTAuthMiddleware())
	authed.GET("", hb.Bookings.GetBookings)
	authed.GET("/:id", hb.Bookings.GetBookingByID)
}

// RegisterUserRoutes registers signup, login, token issuance, and the
// admin-gated account management endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/users", hb.Users.SaveUser)
	r.POST("/users/login", hb.Users.Login)
	r.GET("/jwt", hb.Users.IssueToken)
	r.GET("/users/admin/:email", hb.Users.CheckAdmin)

	admin := r.Group("/users")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnly(hb.UserRepo))
	admin.GET("", hb.Users.GetAllUsers)
	admin.DELETE("/:id", hb.Users.DeleteUser)
	admin.PUT("/admin/:id", hb.Users.MakeAdmin)
}

// RegisterDoctorRoutes registers the admin-gated roster endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/doctors")
	api.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnly(hb.UserRepo))
	api.POST("", hb.Doctors.AddDoctor)
	api.GET("", hb.Doctors.GetDoctors)
	api.DELETE("/:id", hb.Doctors.DeleteDoctor)
}

// RegisterPaymentRoutes registers the authenticated payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/create-payment-intent", hb.Payments.CreatePaymentIntent)
	api.POST("/payments", hb.Payments.RecordPayment)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAppointmentRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
