package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"dealercrm/internal/config"
	"dealercrm/internal/database"
	"dealercrm/internal/events"
	"dealercrm/internal/middleware"
	"dealercrm/internal/modules/auth"
	"dealercrm/internal/modules/communication"
	"dealercrm/internal/modules/finance"
	"dealercrm/internal/modules/lead"
	"dealercrm/internal/modules/pipeline"
	"dealercrm/internal/modules/report"
	"dealercrm/internal/modules/target"
	"dealercrm/internal/modules/task"
	"dealercrm/internal/modules/testdrive"
	"dealercrm/internal/modules/user"
	"dealercrm/internal/modules/vehicle"
	jwtsvc "dealercrm/internal/pkg/jwt"
	"dealercrm/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		log.Fatal(err)
	}

	adapter, err := store.NewGormAdapter(db)
	if err != nil {
		log.Fatal(err)
	}
	st := store.New(adapter)
	if err := st.Reload(); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(st, j)
	authHandler := auth.NewHandler(authService)

	leadService := lead.NewService(st, hub)
	leadHandler := lead.NewHandler(leadService)

	taskService := task.NewService(st, hub)
	taskHandler := task.NewHandler(taskService)

	commService := communication.NewService(st, hub)
	commHandler := communication.NewHandler(commService)

	driveService := testdrive.NewService(st, hub)
	driveHandler := testdrive.NewHandler(driveService)

	vehicleService := vehicle.NewService(st, hub)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	targetService := target.NewService(st, hub)
	targetHandler := target.NewHandler(targetService)

	userService := user.NewService(st, hub)
	userHandler := user.NewHandler(userService)

	pipelineService := pipeline.NewService(st, hub)
	pipelineHandler := pipeline.NewHandler(pipelineService)

	reportService := report.NewService(st)
	reportHandler := report.NewHandler(reportService)

	financeHandler := finance.NewHandler()
	eventsHandler := events.NewHandler(hub)

	// One-time repair pass over historical lead and user names.
	if err := leadService.CleanNames(); err != nil {
		log.Printf("name cleanup: %v", err)
	}
	if err := userService.CleanNames(); err != nil {
		log.Printf("name cleanup: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		financeHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			leadHandler.RegisterRoutes(protected)
			taskHandler.RegisterRoutes(protected)
			commHandler.RegisterRoutes(protected)
			driveHandler.RegisterRoutes(protected)
			vehicleHandler.RegisterRoutes(protected)
			pipelineHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			userHandler.RegisterSharedRoutes(protected)
			eventsHandler.RegisterRoutes(protected)

			management := protected.Group("/")
			management.Use(middleware.ManagementOnly())
			{
				targetHandler.RegisterRoutes(management)
			}

			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterRoutes(admin)
			}
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
