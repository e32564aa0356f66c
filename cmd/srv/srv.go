package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"

	"github.com/farmlink/backend/config"
	"github.com/farmlink/backend/internal/domain"
	"github.com/farmlink/backend/internal/entity"
	"github.com/farmlink/backend/internal/repository"
	"github.com/farmlink/backend/pkg/idutil"
	"github.com/farmlink/backend/pkg/kafka"
	"github.com/farmlink/backend/pkg/logger"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/router"
	"github.com/farmlink/backend/pkg/storage"
	"github.com/farmlink/backend/pkg/xcontext"
	"github.com/farmlink/backend/pkg/xredis"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	publisher   *kafka.Publisher
	memStore    *storage.MemoryStorage
	mediaClient *media.Client

	fileRepo   repository.FileRepository
	orphanRepo media.OrphanLedger

	fileDomain   domain.FileDomain
	healthDomain domain.HealthDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	if level := cctx.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	return nil
}

func (s *srv) loadLogger() {
	level := logger.ParseLevel(xcontext.Configs(s.ctx).Log.Level)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

// loadDatabase falls back to an in-memory sqlite database, so file records
// only live as long as the process when no database is configured.
func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx).Database
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var db *gorm.DB
	var err error
	switch {
	case !cfg.Enabled():
		xcontext.Logger(s.ctx).Warnf("Database is not configured, file records are kept in memory")
		db, err = gorm.Open(sqlite.Open(":memory:"), gormCfg)
	case cfg.Driver == "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.ConnectionString()), gormCfg)
	default:
		db, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), gormCfg)
	}
	if err != nil {
		return err
	}

	if !cfg.Enabled() || cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return entity.MigrateTable(s.ctx)
}

func (s *srv) loadRedis() {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		return
	}

	client, err := xredis.NewClient(s.ctx)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, orphaned objects are only logged: %v", err)
		return
	}

	s.redisClient = client
	s.orphanRepo = repository.NewOrphanRepository(client)
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	if len(cfg.Brokers()) == 0 {
		return
	}

	publisher, err := kafka.NewPublisher(cfg.ClientID, cfg.Brokers())
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to kafka, media events are disabled: %v", err)
		return
	}

	s.publisher = publisher
}

func (s *srv) loadMedia(fetcher media.Fetcher) {
	cfg := xcontext.Configs(s.ctx)
	opts := []media.Option{
		media.WithLogger(xcontext.Logger(s.ctx)),
		media.WithFetcher(fetcher),
	}

	if driver, err := storage.ParseDriver(cfg.Storage.Driver); err == nil && driver == storage.Memory {
		publicEndpoint := cfg.Storage.PublicEndpoint
		if publicEndpoint == "" {
			publicEndpoint = "http://localhost:" + cfg.ApiServer.Port + "/media"
		}
		s.memStore = storage.NewMemoryStorage(publicEndpoint)
		opts = append(opts, media.WithStore(s.memStore))
	}

	if s.publisher != nil {
		opts = append(opts, media.WithPublisher(s.publisher))
	}

	if s.orphanRepo != nil {
		opts = append(opts, media.WithOrphanLedger(s.orphanRepo))
	}

	s.mediaClient = media.NewClient(cfg.Storage, opts...)
}

func (s *srv) loadRepos() {
	s.fileRepo = repository.NewFileRepository()
}

func (s *srv) loadDomains() error {
	idGenerator, err := idutil.NewGenerator(1)
	if err != nil {
		return err
	}

	s.fileDomain = domain.NewFileDomain(s.mediaClient, s.fileRepo, idGenerator)
	s.healthDomain = domain.NewHealthDomain(s.mediaClient)
	return nil
}

func (s *srv) close() {
	if s.publisher != nil {
		if err := s.publisher.Stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop kafka publisher: %v", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close redis client: %v", err)
		}
	}
}
