package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	admintransport "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/adapters/in/transport"
	adminrepo "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/adapters/out/repo"
	adminusecase "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/admin/application/usecase"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/adapters/in/transport"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/adapters/out/fcm"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/adapters/out/repo"
	dispatchws "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/adapters/out/ws"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/dispatch/application/usecase"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/export"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/jobs"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/auth"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/config"
	db_conn "github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/db"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/logger"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/metrics"
	"github.com/Chiranth-Janardhan-moger/Delivery-Website/internal/shared/ws"
)

// Run собирает и запускает сервис целиком
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) {
	log.Info(logger.Entry{Action: "service_starting", Message: "initializing dispatch service"})

	// 1. PostgreSQL
	dbPool, err := db_conn.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_connection_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer db_conn.Close(dbPool, log)

	// Миграции идемпотентны
	if err := db_conn.Migrate(ctx, dbPool); err != nil {
		log.Fatal(logger.Entry{
			Action:  "db_migration_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// 2. JWT и WebSocket hub
	jwtService := auth.NewJWTService(cfg.JWT)

	hub := ws.NewHub(jwtService.ExtractIdentity, log)
	go hub.Run(ctx)

	// 3. Метрики
	metrics.Register()

	// 4. Репозитории (Adapter OUT)
	orderRepo := repo.NewOrderPgRepository(dbPool, log)
	driverRepo := repo.NewDriverPgRepository(dbPool, log)
	txRepo := repo.NewTransactionPgRepository(dbPool, log)
	tokenRepo := repo.NewDeviceTokenPgRepository(dbPool, log)
	userRepo := adminrepo.NewUserPgRepository(dbPool, log)
	statsRepo := adminrepo.NewStatsPgRepository(dbPool, log)

	// 5. Внешние каналы: WebSocket события, FCM, Sheets
	notifier := dispatchws.NewEventNotifier(hub, log)

	wakeup, err := fcm.NewWakeupNotifier(ctx, cfg.FCM, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "fcm_init_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	exporter, err := export.NewSheetsExporter(ctx, cfg.Sheets, log)
	if err != nil {
		log.Fatal(logger.Entry{
			Action:  "sheets_init_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}

	// 6. Use cases (Application)
	createOrderUC := usecase.NewCreateOrderService(orderRepo, notifier, log)
	assignOrderUC := usecase.NewAssignOrderService(orderRepo, driverRepo, tokenRepo, notifier, wakeup, log)
	reassignOrderUC := usecase.NewReassignOrderService(orderRepo, driverRepo, tokenRepo, notifier, wakeup, log)
	confirmUC := usecase.NewConfirmDeliveryService(orderRepo, driverRepo, txRepo, exporter, notifier, log)
	validateUC := usecase.NewValidatePackageService(orderRepo, log)
	deviceTokenUC := usecase.NewRegisterDeviceTokenService(driverRepo, tokenRepo, log)
	driverQueries := usecase.NewDriverQueryService(orderRepo, driverRepo, log)

	createUserUC := adminusecase.NewCreateUserService(userRepo, cfg.HTTP.DefaultPassword, log)
	deleteUserUC := adminusecase.NewDeleteUserService(userRepo, hub, log)

	// 7. HTTP транспорт (Adapter IN)
	mux := http.NewServeMux()

	adminOrderH := transport.NewAdminOrderHandler(createOrderUC, assignOrderUC, reassignOrderUC, orderRepo, log)
	driverH := transport.NewDriverHandler(confirmUC, validateUC, deviceTokenUC, driverQueries, driverRepo, log)
	transport.RegisterRoutes(mux, adminOrderH, driverH, jwtService, log)

	adminH := admintransport.NewHandler(createUserUC, deleteUserUC, userRepo, statsRepo, orderRepo, driverRepo, txRepo, exporter, hub, log)
	admintransport.RegisterRoutes(mux, adminH, transport.RequireRole(jwtService, ws.RoleAdmin, log))

	// Живой канал и служебные endpoints
	mux.HandleFunc("GET /ws", hub.ServeWS)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// 8. Retention-очистка по расписанию
	cleanup := jobs.NewCleanupJob(orderRepo, cfg.Cleanup, log)
	if err := cleanup.Start(); err != nil {
		log.Fatal(logger.Entry{
			Action:  "cleanup_job_start_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	}
	defer cleanup.Stop()

	// 9. HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info(logger.Entry{
			Action:  "http_server_starting",
			Message: fmt.Sprintf("listening on %s", addr),
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(logger.Entry{
				Action:  "http_server_failed",
				Message: err.Error(),
				Error:   &logger.ErrObj{Msg: err.Error()},
			})
		}
	}()

	<-ctx.Done()
	log.Info(logger.Entry{Action: "service_stopping", Message: "shutting down dispatch service"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(logger.Entry{
			Action:  "http_server_shutdown_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
	} else {
		log.Info(logger.Entry{Action: "http_server_stopped", Message: "http server stopped gracefully"})
	}

	log.Info(logger.Entry{Action: "service_stopped", Message: "dispatch service stopped"})
}
