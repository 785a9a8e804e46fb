package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects and addresses the backing store. DSN, when set, wins over the
// individual Postgres fields.
type Config struct {
	Driver string
	DSN    string

	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Schema   string

	SQLitePath string
}

// PostgresDSN renders the Postgres connection URL, selecting Schema via search_path.
func (c Config) PostgresDSN() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
	if s := strings.TrimSpace(c.Schema); s != "" {
		dsn += "&search_path=" + s
	}
	return dsn
}

// Service owns the gorm handle for one pipeline invocation.
type Service struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
	schema string
}

// Open connects to the configured store. The handle must be released with Close.
func Open(logg *logger.Logger, cfg Config) (*Service, error) {
	serviceLog := logg.With("service", "DatabaseService", "driver", cfg.Driver)

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	gormCfg := &gorm.Config{Logger: gormLog}

	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.PostgresDSN())
	case DriverSQLite:
		path := cfg.DSN
		if strings.TrimSpace(path) == "" {
			path = cfg.SQLitePath
		}
		if strings.TrimSpace(path) == "" {
			path = "movies.db"
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", dialector.Name(), err)
	}
	serviceLog.Info("Database connection opened")

	return &Service{db: db, log: serviceLog, driver: dialector.Name(), schema: strings.TrimSpace(cfg.Schema)}, nil
}

// NewService wraps an already opened handle (tests, sqlmock).
func NewService(db *gorm.DB, logg *logger.Logger) *Service {
	return &Service{db: db, log: logg.With("service", "DatabaseService"), driver: db.Dialector.Name()}
}

func (s *Service) DB() *gorm.DB   { return s.db }
func (s *Service) Driver() string { return s.driver }

// Close releases the underlying connection pool.
func (s *Service) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
