// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"rentaldesk-service/internal/config"
	"rentaldesk-service/internal/domain/customer"
	"rentaldesk-service/internal/domain/maintenance"
	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	authHandler "rentaldesk-service/internal/handlers/auth"
	bookingHandler "rentaldesk-service/internal/handlers/booking"
	customerHandler "rentaldesk-service/internal/handlers/customer"
	maintenanceHandler "rentaldesk-service/internal/handlers/maintenance"
	reportHandler "rentaldesk-service/internal/handlers/report"
	vehicleHandler "rentaldesk-service/internal/handlers/vehicle"
	"rentaldesk-service/internal/middleware"
	"rentaldesk-service/internal/pkg/token"
	"rentaldesk-service/internal/repository/memory"
	"rentaldesk-service/internal/repository/postgres"
	authService "rentaldesk-service/internal/service/auth"
	"rentaldesk-service/internal/service/availability"
	bookingService "rentaldesk-service/internal/service/booking"
	customerService "rentaldesk-service/internal/service/customer"
	maintenanceService "rentaldesk-service/internal/service/maintenance"
	"rentaldesk-service/internal/service/pricing"
	reportService "rentaldesk-service/internal/service/report"
	vehicleService "rentaldesk-service/internal/service/vehicle"
	"rentaldesk-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	db     *postgres.DB
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

type repositories struct {
	vehicles     vehicle.Repository
	customers    customer.Repository
	reservations reservation.Repository
	maintenance  maintenance.Repository
}

func (s *Server) buildRepositories(ctx context.Context) (*repositories, error) {
	switch s.cfg.StoreDriver {
	case "memory":
		store := memory.NewStore()
		return &repositories{
			vehicles:     store.Vehicles(),
			customers:    store.Customers(),
			reservations: store.Reservations(),
			maintenance:  store.Maintenance(),
		}, nil

	case "postgres":
		db, err := postgres.Connect(ctx, s.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		s.db = db
		return &repositories{
			vehicles:     postgres.NewVehicleRepository(db.Pool()),
			customers:    postgres.NewCustomerRepository(db.Pool()),
			reservations: postgres.NewReservationRepository(db),
			maintenance:  postgres.NewMaintenanceRepository(db),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", s.cfg.StoreDriver)
	}
}

func (s *Server) Start(ctx context.Context) error {
	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Storage -----
	repos, err := s.buildRepositories(ctx)
	if err != nil {
		return err
	}
	logger.Info("storage ready", zap.String("driver", s.cfg.StoreDriver))

	// ----- Session Tokens -----
	tokens := token.NewManager(s.cfg.Token)

	// ----- WebSocket Hub -----
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	authSvc, err := authService.NewAuthService(s.cfg.OperatorUsername, s.cfg.OperatorPassword, tokens, logger)
	if err != nil {
		return fmt.Errorf("failed to build auth service: %w", err)
	}

	checker := availability.NewChecker(repos.vehicles, repos.reservations, logger)
	calculator := pricing.NewCalculator(s.cfg.DriverFeePerDay, s.cfg.BaseDailyRate)
	customerSvc := customerService.NewCustomerService(repos.customers, logger)
	vehicleSvc := vehicleService.NewVehicleService(repos.vehicles, hub, logger)
	bookingSvc := bookingService.NewBookingService(
		repos.vehicles, repos.reservations, customerSvc,
		checker, calculator, hub, logger,
	)
	maintenanceSvc := maintenanceService.NewMaintenanceService(
		repos.maintenance, repos.reservations, repos.vehicles, hub, logger,
	)
	reportSvc := reportService.NewReportService(repos.reservations, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:        authHandler.NewAuthHandler(authSvc),
		VehicleHandler:     vehicleHandler.NewVehicleHandler(vehicleSvc),
		BookingHandler:     bookingHandler.NewBookingHandler(bookingSvc),
		CustomerHandler:    customerHandler.NewCustomerHandler(customerSvc),
		MaintenanceHandler: maintenanceHandler.NewMaintenanceHandler(maintenanceSvc),
		ReportHandler:      reportHandler.NewReportHandler(reportSvc),
		WSHandler:          ws.Handler(hub, tokens, logger),
		AuthMiddleware:     authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown releases held resources.
func (s *Server) Shutdown() {
	if s.db != nil {
		s.db.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}
}
