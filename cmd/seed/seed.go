package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/nulzo/zoo-api/internal/config"
	"github.com/nulzo/zoo-api/internal/platform/logger"
	"github.com/nulzo/zoo-api/internal/store/model"
	"github.com/nulzo/zoo-api/internal/store/sqlite"
	"go.uber.org/zap"
)

var sampleZoos = []string{
	"Lincoln Park Zoo",
	"Brookfield Zoo",
	"San Diego Zoo",
	"Bronx Zoo",
	"Smithsonian National Zoo",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	dsn := flag.String("dsn", cfg.Database.DSN, "sqlite database to seed")
	flag.Parse()

	log := logger.Get()
	defer logger.Sync()

	repo, err := sqlite.NewSQLiteStorage(*dsn, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer repo.Close()

	ctx := context.Background()

	for _, name := range sampleZoos {
		ids, err := repo.Zoos().Insert(ctx, model.Fields{"name": name})
		if err != nil {
			log.Error("Failed to seed zoo", zap.String("name", name), zap.Error(err))
			continue
		}
		fmt.Printf("Created Zoo %q with ID %d\n", name, ids[0])
	}

	fmt.Printf("\nSuccessfully seeded %s\n", *dsn)
}
