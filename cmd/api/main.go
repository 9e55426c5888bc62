package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	_ "github.com/Samadhi-12/MinuteMe/docs"
	"github.com/Samadhi-12/MinuteMe/internal/adapter/handler"
	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository"
	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	mongorepo "github.com/Samadhi-12/MinuteMe/internal/adapter/repository/mongo"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/cache"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/database"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/external/gcalendar"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/external/oauth"
	httpmw "github.com/Samadhi-12/MinuteMe/internal/infrastructure/http/middleware"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/identity"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/media"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/metrics"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/storage"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/agenda"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/calendar"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/meeting"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/minutes"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/notification"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/pipeline"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/transcription"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/user"
	pkgai "github.com/Samadhi-12/MinuteMe/pkg/ai"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
	"github.com/Samadhi-12/MinuteMe/pkg/ratelimit"
	pkgvalidator "github.com/Samadhi-12/MinuteMe/pkg/validator"
)

// @title           MinuteMe API
// @version         1.0
// @description     Meeting productivity backend: transcription, minutes, action items, agendas and calendar scheduling

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	logger.Info("🔧 Initializing dependencies...")

	repos, closeRepos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open repositories", zap.Error(err))
	}
	defer closeRepos()

	// OAuth state store: Redis when enabled, otherwise in-process
	var stateStore interface {
		oauth.Store
		Close() error
	}
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		stateStore = cache.NewRedisStore(redisClient)
	} else {
		stateStore = cache.NewMemoryStore()
	}
	defer stateStore.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Object storage for uploads and transcript archives
	var (
		objects    transcription.ObjectStore
		downloader media.ObjectDownloader
	)
	if cfg.Storage.Enabled {
		logger.Info("🪣 Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to connect to object storage", zap.Error(err))
		}
		objects, downloader = minioClient, minioClient
	}

	toolkit, err := media.NewToolkit(&cfg.Media)
	if err != nil {
		logger.Fatal("Failed to locate ffmpeg", zap.Error(err))
	}

	// AI collaborators
	logger.Info("🤖 Initializing AI components...")
	groq := pkgai.NewGroqClient(&cfg.Groq)
	var (
		summarizer minutes.Summarizer        = pkgai.NewExtractiveSummarizer(3)
		classifier agenda.Classifier         = agenda.KeywordClassifier{}
		namer      agenda.Namer              = agenda.KeywordNamer{Phrases: 2}
		stt        transcription.Transcriber = pkgai.NewAssemblyAITranscriber(&cfg.Assembly, logger)
	)
	if groq.Enabled() {
		summarizer = groq
		namer = agenda.NewSummaryNamer(groq, logger)
	}
	if cfg.Agenda.Classifier == config.ClassifierZeroShot {
		classifier = agenda.NewZeroShotClassifier(groq, logger)
	}
	logger.Info("🧭 Agenda classifier selected", zap.String("classifier", cfg.Agenda.Classifier))

	// Calendar integration, premium only and optional
	var (
		calendarSvc *calendar.Service
		calendarFor actionitem.CalendarService
		loc         *time.Location
	)
	loc, err = time.LoadLocation(cfg.Calendar.TimeZone)
	if err != nil {
		logger.Fatal("Invalid calendar time zone", zap.String("timezone", cfg.Calendar.TimeZone), zap.Error(err))
	}
	if cfg.CalendarEnabled() {
		logger.Info("📅 Initializing Google Calendar integration...")
		provider := oauth.NewGoogleProvider(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.OAuth.Google.RedirectURL,
		)
		client, err := gcalendar.NewClient(provider, &cfg.Calendar)
		if err != nil {
			logger.Fatal("Failed to initialize calendar client", zap.Error(err))
		}
		calendarSvc = calendar.NewService(repos.Users, provider, oauth.NewStateManager(stateStore), client, logger)
		calendarFor = calendarSvc
		loc = client.Location()
	} else {
		logger.Warn("⚠️ Google OAuth credentials missing, calendar integration disabled")
	}

	// Use cases
	users := user.NewService(repos.Users, logger)
	quotas := quota.NewService(repos.Usage, cfg.Quota, m, logger)
	notifications := notification.NewService(repos.Notifications, logger)
	agendas := agenda.NewService(repos.Agendas, repos.Minutes, classifier, namer, logger)
	minutesSvc := minutes.NewService(repos.Minutes, repos.Transcripts, minutes.NewGenerator(summarizer), logger)
	items := actionitem.NewService(repos, actionitem.Options{
		Calendar:  calendarFor,
		Finalizer: pipeline.NewLoopCloser(agendas, logger),
		Location:  loc,
		DayStart:  cfg.Calendar.DayStart,
		Metrics:   m,
		Logger:    logger,
	})
	meetings := meeting.NewService(repos, quotas, meeting.Options{
		Calendar: calendarFor,
		Location: loc,
		DayStart: cfg.Calendar.DayStart,
		Logger:   logger,
	})
	transcripts := transcription.NewService(repos.Transcripts, quotas, media.NewFetcher(downloader), toolkit, stt, transcription.Options{
		ScratchDir:     cfg.Media.ScratchDir,
		ChunkThreshold: cfg.Assembly.ChunkThreshold,
		ChunkLength:    cfg.Assembly.ChunkLength,
		Objects:        objects,
		Logger:         logger,
	})
	orchestrator := pipeline.NewOrchestrator(
		pipeline.Stages{Transcription: transcripts, Minutes: minutesSvc, ActionItems: items},
		meetings,
		quotas,
		notifications,
		cfg.Pipeline,
		m,
		logger,
	)

	// Identity
	logger.Info("🔐 Initializing identity verifier...", zap.String("provider", cfg.Auth.Provider))
	verifier, err := identity.New(ctx, &cfg.Auth)
	if err != nil {
		logger.Fatal("Failed to initialize identity verifier", zap.Error(err))
	}

	limiter := ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer limiter.Stop()

	handlers := handler.Handlers{
		Agenda:        handler.NewAgenda(agendas, logger),
		Meeting:       handler.NewMeeting(meetings, logger),
		Transcription: handler.NewTranscription(transcripts, handler.DefaultMaxUploadBytes, logger),
		Minutes:       handler.NewMinutes(minutesSvc, quotas, logger),
		ActionItem:    handler.NewActionItem(items, logger),
		Automation:    handler.NewAutomation(orchestrator, logger),
		Notification:  handler.NewNotification(notifications, logger),
		Quota:         handler.NewQuota(quotas, logger),
		Admin:         handler.NewAdmin(users, logger),
	}
	if calendarSvc != nil {
		handlers.Calendar = handler.NewCalendar(calendarSvc, logger)
	}

	logger.Info("🛣️ Setting up routes...")
	router := handler.NewRouter(
		cfg.Server.Environment,
		handlers,
		httpmw.EchoAuth(verifier, users, logger),
		limiter,
		m.Handler(),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
			zap.String("db_driver", cfg.Database.Driver),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
	}
	if err := orchestrator.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Automation runs did not finish in time", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openRepositories connects the backend selected by DB_DRIVER
func openRepositories(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*repositories.Repositories, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		logger.Info("📦 Connecting to MongoDB...")
		client, db, err := database.NewMongoDB(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return mongorepo.New(db), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.DriverMemory:
		logger.Warn("⚠️ Using in-memory repositories, data is lost on restart")
		return memory.New(), func() {}, nil

	default:
		logger.Info("📦 Connecting to PostgreSQL...")
		db, err := database.NewPostgresDB(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if n, err := database.MigrateUp(db, database.DefaultMigrationsDir); err != nil {
			_ = database.CloseDB(db)
			return nil, nil, err
		} else if n > 0 {
			logger.Info("🔄 Applied migrations", zap.Int("count", n))
		}
		return repository.New(db), func() { _ = database.CloseDB(db) }, nil
	}
}
