// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"screener_backend/internal/domain/entity"
)

// OpenDB は環境変数からデータベース接続を初期化し、マイグレーションを実行します。
//
// DB_DRIVER:
//   - "mysql"（デフォルト）: DB_USER/DB_PASSWORD/DB_HOST/DB_PORT/DB_NAME を使用
//   - "postgres": 同上
//   - "sqlite": DB_PATH（未設定なら screener.db）を使用。ローカル開発用
func OpenDB() *gorm.DB {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "mysql"
	}

	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "screener.db"
		}
		dialector = gsqlite.Open(path)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
		dialector = gpostgres.Open(dsn)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
		dialector = gmysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// マイグレーション
	if err := db.AutoMigrate(
		&entity.Symbol{},
		&entity.Index{},
		&entity.IndexConstituent{},
		&entity.Screener{},
		&entity.ScreenerEvent{},
		&entity.DailyScreenerStatus{},
		&entity.DailySymbolSnapshot{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
