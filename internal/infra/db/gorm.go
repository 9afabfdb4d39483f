package db

import (
	"database/sql"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 接続プールは pgx の database/sql ドライバで作り、gorm に渡す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	sqlDB, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("open pgx: %w", err)
	}
	// カタログ読み込み専用なので小さめ
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return gormDB, nil
}

// Close は gorm が持つ接続プールを閉じる。
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate はカタログのテーブルを作る（DB_AUTO_MIGRATE=true のとき）。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.Category{},
		&model.Product{},
	)
}
