package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/hangar-scheduler/internal/audit"
	"github.com/BruksfildServices01/hangar-scheduler/internal/config"
	domain "github.com/BruksfildServices01/hangar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/hangar-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/hangar-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/hangar-scheduler/internal/middleware"
	"github.com/BruksfildServices01/hangar-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/hangar-scheduler/internal/usecase/appointment"
	ucFinance "github.com/BruksfildServices01/hangar-scheduler/internal/usecase/finance"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	locker domain.SlotLocker,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	financeRepo := infraRepo.NewFinanceGormRepository(db)
	clock := timezone.SystemClock{}

	// ======================================================
	// 🧠 USE CASES: AGENDA
	// ======================================================
	submitBookingUC := ucAppointment.NewSubmitBooking(
		appointmentRepo,
		locker,
		auditDispatcher,
		clock,
	)

	transitionStatusUC := ucAppointment.NewTransitionStatus(
		appointmentRepo,
		auditDispatcher,
		clock,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	createCustomerUC := ucAppointment.NewCreateCustomer(
		appointmentRepo,
		auditDispatcher,
	)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, clock)
	openDatesUC := ucAppointment.NewListOpenDates(appointmentRepo, clock, cfg.OpenDatesHorizonDays)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	dashboardUC := ucAppointment.NewGetDashboard(appointmentRepo, clock)

	// ======================================================
	// 💰 USE CASES: FINANCEIRO
	// ======================================================
	summaryUC := ucFinance.NewGetFinancialSummary(financeRepo, clock)
	entriesUC := ucFinance.NewEntries(financeRepo, auditDispatcher)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	hangarHandler := handlers.NewHangarHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	customerHandler := handlers.NewCustomerHandler(db, createCustomerUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		submitBookingUC,
		transitionStatusUC,
		deleteAppointmentUC,
		listByDateUC,
		listByMonthUC,
	)

	financeHandler := handlers.NewFinanceHandler(summaryUC, entriesUC, dashboardUC, clock)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, submitBookingUC, availabilityUC, openDatesUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("", publicHandler.GetHangar)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/open-dates", publicHandler.OpenDates)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/hangar", hangarHandler.GetSettings)
			secured.PATCH("/hangar", hangarHandler.UpdateSettings)

			secured.GET("/operating-rules", hangarHandler.GetOperatingRules)
			secured.PUT("/operating-rules", hangarHandler.PutOperatingRules)

			secured.GET("/blocked-dates", hangarHandler.ListBlockedDates)
			secured.POST("/blocked-dates", hangarHandler.CreateBlockedDate)
			secured.DELETE("/blocked-dates/:id", hangarHandler.DeleteBlockedDate)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/bays", serviceHandler.ListBays)
			secured.POST("/bays", serviceHandler.CreateBay)

			secured.GET("/customers", customerHandler.List)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.POST("/customers", customerHandler.Create)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// PAINEL + FINANCEIRO
			// ------------------------------
			secured.GET("/dashboard", financeHandler.Dashboard)
			secured.GET("/finance/summary", financeHandler.Summary)
			secured.GET("/expenses", financeHandler.ListExpenses)
			secured.POST("/expenses", financeHandler.CreateExpense)
			secured.DELETE("/expenses/:id", financeHandler.DeleteExpense)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
