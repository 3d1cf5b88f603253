package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"screener_backend/internal/feature/snapshots/adapters"
	"screener_backend/internal/feature/snapshots/adapters/nse"
	"screener_backend/internal/feature/snapshots/usecase"
	infradb "screener_backend/internal/platform/db"
	infrahttp "screener_backend/internal/platform/http"
)

func main() {
	_ = godotenv.Load()

	dateFlag := flag.String("date", "", "trade date YYYY-MM-DD (default: today)")
	symbolsFlag := flag.String("symbols", "", "comma separated tickers (default: whole catalog)")
	flag.Parse()

	tradeDate := time.Now().UTC()
	if *dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", *dateFlag)
		if err != nil {
			log.Fatalf("invalid -date %q: %v", *dateFlag, err)
		}
		tradeDate = parsed
	}

	var tickers []string
	if *symbolsFlag != "" {
		for _, s := range strings.Split(*symbolsFlag, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tickers = append(tickers, s)
			}
		}
	}

	db := infradb.OpenDB()
	snapshotRepo := adapters.NewSnapshotRepository(db)

	cfg := nse.NewConfigFromEnv()
	nseClient := nse.NewClient(cfg, infrahttp.NewHTTPClient(cfg.Timeout))

	uc := usecase.NewIngestUsecase(snapshotRepo, nseClient, snapshotRepo, nse.LimiterFromEnv())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	result, err := uc.IngestEOD(ctx, tradeDate, tickers)
	if err != nil {
		log.Fatal(err)
	}
	if result.Requested == 0 {
		log.Println("no symbols configured, nothing to ingest")
		return
	}
	log.Printf("ingest ok: %d/%d symbols", result.Ingested, result.Requested)
}
