package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	app "github.com/user-importer/internal/application/user"
	"github.com/user-importer/internal/config"
	"github.com/user-importer/internal/infrastructure/cache"
	"github.com/user-importer/internal/infrastructure/file"
	"github.com/user-importer/internal/infrastructure/repository"
	httpecho "github.com/user-importer/internal/interfaces/http/echo"
	"github.com/user-importer/internal/parser"
	"gorm.io/gorm"
)

func NewHTTPServer(db *gorm.DB, pool *pgxpool.Pool, redisClient *redis.Client, cfg config.ImportConfig) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("50M"))

	extractor := parser.Extractor{}
	states := cache.NewImportStateStore(redisClient)
	historyRepo := repository.NewImportHistoryRepository(db)
	accountRepo := repository.NewAccountRepository(pool)
	uploadStore := file.NewLocalStore(cfg.UploadDir)

	writer := app.NewRecordWriter(accountRepo, cfg.DefaultRole)
	receiveUpload := app.NewReceiveUpload(uploadStore)
	initializeImport := app.NewInitializeImport(extractor, historyRepo, states, cfg.StateTTL)
	advanceImport := app.NewAdvanceImport(extractor, states, historyRepo, writer, app.AdvanceImportConfig{
		BatchSize:       cfg.BatchSize,
		StateTTL:        cfg.StateTTL,
		LockTTL:         cfg.LockTTL,
		SkipInvalidRows: cfg.SkipInvalidRows,
	})
	getHistory := app.NewGetImportHistory(historyRepo)

	importHandler := httpecho.NewImportHandler(receiveUpload, initializeImport, advanceImport, getHistory)

	accountQueryRepo := repository.NewAccountQueryRepository(db)
	getAccountByID := app.NewGetAccountByID(accountQueryRepo)
	userHandler := httpecho.NewUserHandler(getAccountByID)

	httpecho.RegisterRoutes(server, importHandler, userHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
