package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"screener_backend/internal/feature/catalog/adapters"
	"screener_backend/internal/feature/catalog/usecase"
	infradb "screener_backend/internal/platform/db"
)

// インデックス構成銘柄CSVをロードするスタンドアロンコマンド。
// 手動またはcronから実行され、APIサーバーとは独立しています。
//
// 使い方:
//
//	loadindex -index NIFTY50 -description "NIFTY 50 Index" -csv ./ind_nifty50list.csv
func main() {
	_ = godotenv.Load()

	indexFlag := flag.String("index", "", "index name (e.g. NIFTY50)")
	descFlag := flag.String("description", "", "index description")
	csvFlag := flag.String("csv", "", "path to constituent CSV file")
	flag.Parse()

	if *indexFlag == "" || *csvFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*csvFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	db := infradb.OpenDB()
	uc := usecase.NewLoaderUsecase(adapters.NewCatalogRepository(db))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := uc.LoadIndex(ctx, *indexFlag, *descFlag, f)
	if err != nil {
		log.Fatal(err)
	}

	if result.IndexCreated {
		log.Printf("created index %s", *indexFlag)
	}
	log.Printf("index load complete: %d symbols, %d new constituents",
		result.Symbols, result.NewConstituents)
}
