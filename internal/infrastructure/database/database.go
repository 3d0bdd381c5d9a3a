package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"chef-app/internal/pkg/common"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open 開啟 SQLite 資料庫並執行 migration
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// 每個連線各自擁有一個記憶體資料庫，只能用單一連線
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	common.LogInfo("資料庫已開啟", zap.String("path", dbPath))
	return db, nil
}

func dsn(dbPath string) string {
	params := []string{"_pragma=busy_timeout(5000)", "_pragma=foreign_keys(1)"}
	if !isMemory(dbPath) {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	return dbPath + "?" + strings.Join(params, "&")
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// gooseLogger 將 goose 的輸出導向 zap
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	common.LogDebug(strings.TrimSpace(fmt.Sprintf(format, v...)), zap.String("component", "goose"))
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	common.LogFatal(strings.TrimSpace(fmt.Sprintf(format, v...)), zap.String("component", "goose"))
}
