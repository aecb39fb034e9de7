package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	appointmentpb "github.com/rdvdesk/core/internal/api/appointment/v1"
	"github.com/rdvdesk/core/internal/config"
	"github.com/rdvdesk/core/internal/db"
	"github.com/rdvdesk/core/internal/export"
	"github.com/rdvdesk/core/internal/logging"
	"github.com/rdvdesk/core/internal/middleware"
	"github.com/rdvdesk/core/internal/model"
	"github.com/rdvdesk/core/internal/repository"
	"github.com/rdvdesk/core/internal/service"
	"github.com/rdvdesk/core/internal/web"
	"github.com/rdvdesk/core/internal/workflow"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "core.yaml", "path to YAML config (optional)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Конфиг приложения (YAML + env + .env) и логгер.
	appCfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		bootLog := logging.New("info", false)
		bootLog.Fatal().Err(err).Msg("load app config")
	}
	root := logging.New(appCfg.LogLevel, appCfg.LogPretty)
	log := logging.Component(root, "main")

	loc, err := appCfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("timezone")
	}

	// 2. Конфиг БД из env и подключение через GORM.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load db config")
	}
	gormDB, closeDB, err := db.NewGormDB(ctx, dbCfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", dbCfg.Driver).Msg("init db")
	}
	defer closeDB()

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("auto migrate")
	}

	// 4. Репозиторий, переходы статусов и экспорт календаря.
	repo := repository.NewGormAppointmentRepository(gormDB)
	flow := workflow.New(repo, logging.Component(root, "workflow"))
	cal := export.Calendar{
		Location:  loc,
		Duration:  appCfg.EventDuration,
		ProductID: appCfg.ProductID,
		UIDDomain: appCfg.CalendarUID,
	}

	// 5. Проверка неявок по расписанию.
	sweeper := workflow.NewSweeper(flow, cal, appCfg.NoShowGrace, logging.Component(root, "sweeper"))
	if err := sweeper.Start(appCfg.NoShowCron); err != nil {
		log.Fatal().Err(err).Msg("start no-show sweeper")
	}

	// 6. gRPC-сервис записей.
	svc := service.NewAppointmentService(repo, flow, cal, appCfg.PageSize, logging.Component(root, "service"))

	limiter := middleware.NewRateLimiter(appCfg.RateLimit, appCfg.RateBurst)
	go limiter.Run(ctx)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.Logging(logging.Component(root, "grpc")),
			middleware.RateLimit(limiter),
		),
	)
	appointmentpb.RegisterAppointmentServiceServer(grpcServer, svc)
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(appointmentpb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", appCfg.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", appCfg.GRPCAddr).Msg("listen")
	}

	// 7. HTTP для выгрузок из браузера.
	httpServer := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           web.NewServer(svc, logging.Component(root, "http")).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 8. Запускаем серверы в горутинах.
	go func() {
		log.Info().Str("addr", appCfg.GRPCAddr).Msg("core gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc serve")
			stop()
		}
	}()
	go func() {
		log.Info().Str("addr", appCfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http serve")
			stop()
		}
	}()

	// 9. Грейсфул-шатдаун по сигналу.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	healthSrv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	grpcServer.GracefulStop()

	select {
	case <-sweeper.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("no-show sweep still running at shutdown")
	}
}
