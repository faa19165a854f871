package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"warehouse-etl/internal/config"
	"warehouse-etl/internal/etl"
	"warehouse-etl/internal/warehouse"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "config.yaml", "path to config file")
	dbType := flag.String("db", "postgres", "warehouse backend (postgres, mysql, or mongo)")
	dataDir := flag.String("data-dir", "", "override input directory from config")

	flag.Parse()

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{"stdout"}
	logger, err := zapCfg.Build()
	if err != nil {
		log.Printf("Failed to build logger: %v", err)
		exitCode = 1
		return
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		exitCode = 1
		return
	}

	drivers := map[string]warehouse.Driver{
		"postgres": &warehouse.PostgresDriver{},
		"mysql":    &warehouse.MySQLDriver{},
		"mongo":    &warehouse.MongoDriver{},
	}

	driver, ok := drivers[*dbType]
	if !ok {
		logger.Error("unsupported warehouse backend", zap.String("db", *dbType))
		exitCode = 1
		return
	}

	var dsn string
	switch *dbType {
	case "postgres":
		dsn = cfg.Databases.Postgres
	case "mysql":
		dsn = cfg.Databases.MySQL
	case "mongo":
		dsn = cfg.Databases.Mongo
	}
	if err := driver.Connect(dsn); err != nil {
		logger.Error("failed to connect to warehouse",
			zap.String("db", *dbType), zap.Error(err))
		exitCode = 1
		return
	}

	dir := cfg.ETL.DataDir
	if *dataDir != "" {
		dir = *dataDir
	}

	// The pipeline owns the driver from here and closes it on exit.
	pipeline := etl.New(driver, dir, cfg.ETL.ChunkSize, logger)
	report, err := pipeline.Run(context.Background())
	if err != nil {
		logger.Error("pipeline execution failed", zap.Error(err))
		exitCode = 1
		return
	}

	fmt.Println(report)
}
