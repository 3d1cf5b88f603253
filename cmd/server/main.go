package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"screener_backend/internal/app/router"
	alertadapters "screener_backend/internal/feature/alerts/adapters"
	alerthandler "screener_backend/internal/feature/alerts/transport/handler"
	alertusecase "screener_backend/internal/feature/alerts/usecase"
	catalogadapters "screener_backend/internal/feature/catalog/adapters"
	cataloghandler "screener_backend/internal/feature/catalog/transport/handler"
	catalogusecase "screener_backend/internal/feature/catalog/usecase"
	dashboardadapters "screener_backend/internal/feature/dashboard/adapters"
	dashboardhandler "screener_backend/internal/feature/dashboard/transport/handler"
	dashboardusecase "screener_backend/internal/feature/dashboard/usecase"
	snapshotadapters "screener_backend/internal/feature/snapshots/adapters"
	"screener_backend/internal/feature/snapshots/adapters/nse"
	snapshotusecase "screener_backend/internal/feature/snapshots/usecase"
	"screener_backend/internal/platform/cache"
	infradb "screener_backend/internal/platform/db"
	infrahttp "screener_backend/internal/platform/http"
	infraredis "screener_backend/internal/platform/redis"
)

func main() {
	// ローカル実行時は .env を読み込む（無ければ何もしない）
	_ = godotenv.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	alertRepo := alertadapters.NewAlertRepository(db)
	catalogRepo := catalogadapters.NewCatalogRepository(db)
	dashboardRepo := dashboardadapters.NewDashboardRepository(db)

	// Usecase
	webhookUC := alertusecase.NewWebhookUsecase(alertRepo)
	screenerUC := alertusecase.NewScreenerUsecase(alertRepo)
	catalogUC := catalogusecase.NewCatalogUsecase(catalogRepo)
	dashboardUC := dashboardusecase.NewDashboardUsecase(dashboardRepo)

	// Redisキャッシュでラップ（短TTL、EOD確定時刻を上限に）
	ttl := time.Minute
	if until := cache.TimeUntilNext7PM(); until < ttl {
		ttl = until
	}
	cachedDashboard := cache.NewCachingDashboardQuery(rdb, ttl, dashboardUC, "dashboard")

	// Handler
	webhookH := alerthandler.NewWebhookHandler(webhookUC)
	screenerH := alerthandler.NewScreenerHandler(screenerUC)
	catalogH := cataloghandler.NewCatalogHandler(catalogUC)
	dashboardH := dashboardhandler.NewDashboardHandler(cachedDashboard)

	// SNAPSHOT_CRON が設定されていればEODスナップショット取り込みをスケジュール
	// 例: SNAPSHOT_CRON="30 18 * * 1-5" （平日18:30）
	if spec := os.Getenv("SNAPSHOT_CRON"); spec != "" {
		snapshotRepo := snapshotadapters.NewSnapshotRepository(db)
		nseCfg := nse.NewConfigFromEnv()
		nseClient := nse.NewClient(nseCfg, infrahttp.NewHTTPClient(nseCfg.Timeout))
		ingestUC := snapshotusecase.NewIngestUsecase(snapshotRepo, nseClient, snapshotRepo, nse.LimiterFromEnv())

		c := cron.New()
		if _, err := c.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()
			result, err := ingestUC.IngestEOD(ctx, time.Now(), nil)
			if err != nil {
				log.Println("[ERROR] scheduled snapshot ingestion failed:", err)
				return
			}
			log.Printf("scheduled snapshot ingestion done: %d/%d symbols", result.Ingested, result.Requested)
		}); err != nil {
			log.Fatalf("invalid SNAPSHOT_CRON %q: %v", spec, err)
		}
		c.Start()
		defer c.Stop()
	}

	// ルータ生成
	r := router.NewRouter(webhookH, screenerH, catalogH, dashboardH)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
