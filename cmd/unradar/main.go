// cmd/unradar/main.go
package main

import (
	"context"
	"flag"
	"log"

	"github.com/mfreeman451/unradar/pkg/alerts"
	"github.com/mfreeman451/unradar/pkg/api"
	"github.com/mfreeman451/unradar/pkg/config"
	"github.com/mfreeman451/unradar/pkg/db"
	"github.com/mfreeman451/unradar/pkg/exporter"
	"github.com/mfreeman451/unradar/pkg/lifecycle"
	"github.com/mfreeman451/unradar/pkg/metrics"
	"github.com/mfreeman451/unradar/pkg/monitor"
)

func main() {
	log.Printf("Starting unradar...")

	configPath := flag.String("config", "/etc/unradar/unradar.json", "Path to config file")
	flag.Parse()

	var cfg monitor.Config
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	collector := metrics.NewManager(cfg.Metrics)

	alerters := make([]alerts.AlertService, 0, len(cfg.Webhooks))
	for _, webhook := range cfg.Webhooks {
		alerters = append(alerters, alerts.NewWebhookAlerter(webhook))
	}

	var exp exporter.SnapshotExporter

	if cfg.InfluxDB != nil && cfg.InfluxDB.Enabled {
		influx, err := exporter.NewInfluxExporter(cfg.InfluxDB)
		if err != nil {
			log.Fatalf("Failed to connect to InfluxDB: %v", err)
		}

		exp = influx
	}

	monitorSvc := monitor.NewService(cfg, database, collector, alerters, exp)
	apiServer := api.NewServer(cfg.ListenAddr, monitorSvc)

	opts := &lifecycle.ServerOptions{
		GRPCAddr:          cfg.GrpcAddr,
		ServiceName:       "unradar",
		Services:          []lifecycle.Service{monitorSvc, apiServer},
		EnableHealthCheck: cfg.GrpcAddr != "",
	}

	if err := lifecycle.RunServer(context.Background(), opts); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
