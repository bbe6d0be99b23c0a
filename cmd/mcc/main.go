// Package main implements the Motion Control Container entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/motion-control/mcc/internal/adapter/logstub"
	"github.com/motion-control/mcc/internal/api"
	"github.com/motion-control/mcc/internal/audit"
	"github.com/motion-control/mcc/internal/auth"
	"github.com/motion-control/mcc/internal/command"
	"github.com/motion-control/mcc/internal/config"
	"github.com/motion-control/mcc/internal/motion"
	"github.com/motion-control/mcc/internal/receiver"
	"github.com/motion-control/mcc/internal/telemetry"
	"github.com/motion-control/mcc/pkg/logger"
)

const Version = "1.0.0"

var (
	configPath  = flag.String("config", "", "path to YAML config file")
	listenAddr  = flag.String("listen-addr", "", "interface to bind the UDP listener")
	listenPort  = flag.Int("listen-port", 0, "UDP port to listen on")
	apiAddr     = flag.String("api-addr", "", "address of the HTTP status API")
	showVersion = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mcc v%s\n", Version)
		return
	}

	logger.Init()
	log := logger.Log
	log.Infof("Starting Motion Control Container v%s", Version)

	// Step 1: Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	applyFlagOverrides(cfg)
	log.Info("Configuration loaded successfully")

	// Step 2: Initialize telemetry hub
	telemetryHub := telemetry.NewHub(cfg)
	log.Info("Telemetry hub initialized")

	// Step 3: Initialize audit logger
	auditLogger, err := audit.NewLogger(cfg.Audit.Dir, cfg.Audit.MaxSizeMB, cfg.Audit.MaxBackups)
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}
	log.Info("Audit logger initialized")

	// Step 4: Initialize motion tracker
	tracker := motion.NewTracker()
	log.Info("Motion tracker initialized")

	// Step 5: Create command orchestrator with the placeholder motor driver
	orchestrator := command.NewOrchestrator(telemetryHub, cfg)
	orchestrator.SetAuditLogger(auditLogger)
	orchestrator.SetMotionTracker(tracker)
	orchestrator.SetActiveAdapter(logstub.New())

	// Step 6: Start status API server
	var apiServer *api.Server
	serverErr := make(chan error, 2)
	if cfg.API.Enabled {
		var authMiddleware *auth.Middleware
		if cfg.API.AuthSecret != "" {
			authMiddleware = auth.NewMiddleware(auth.NewVerifier(cfg.API.AuthSecret))
		}
		apiServer = api.NewServer(tracker, telemetryHub, authMiddleware)
		go func() {
			if err := apiServer.Start(cfg.API.Addr); err != nil {
				serverErr <- fmt.Errorf("status API failed: %w", err)
			}
		}()
		log.Infof("Status API listening on %s", cfg.API.Addr)
	}

	// Step 7: Bind the UDP socket and start the receive loop
	rcv := receiver.New(cfg, orchestrator)
	if err := rcv.Listen(); err != nil {
		log.Fatalf("Failed to bind command socket: %v", err)
	}
	go func() {
		if err := rcv.Serve(); err != nil {
			serverErr <- fmt.Errorf("receive loop failed: %w", err)
		}
	}()

	log.Info("Motion Control Container started successfully")

	// Wait for shutdown signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-shutdown:
		log.Infof("Received signal %v, initiating graceful shutdown...", sig)
	case err := <-serverErr:
		log.Errorf("Server error: %v", err)
		exitCode = 1
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := rcv.Close(); err != nil {
		log.Errorf("Error closing command socket: %v", err)
	}
	log.Info("Command socket closed")

	if apiServer != nil {
		if err := apiServer.Stop(ctx); err != nil {
			log.Errorf("Error stopping status API: %v", err)
		} else {
			log.Info("Status API stopped gracefully")
		}
	}

	telemetryHub.Stop()
	log.Info("Telemetry hub stopped")

	if err := auditLogger.Close(); err != nil {
		log.Errorf("Error closing audit logger: %v", err)
	}
	log.Info("Audit logger closed")

	log.Info("Motion Control Container shutdown complete")
	os.Exit(exitCode)
}

// applyFlagOverrides applies command-line flags on top of the loaded
// configuration. Flags win over file and environment values.
func applyFlagOverrides(cfg *config.Config) {
	if *listenAddr != "" {
		cfg.Network.ListenAddr = *listenAddr
	}
	if *listenPort != 0 {
		cfg.Network.ListenPort = *listenPort
	}
	if *apiAddr != "" {
		cfg.API.Addr = *apiAddr
	}
}
