package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/updateos/binmgr/internal/infrastructure/config"
	"github.com/updateos/binmgr/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides BINMGR_PORT)")
	storageDir := flag.String("storage", "", "Binary storage directory (overrides BINMGR_STORAGE_DIR)")
	skipScan := flag.Bool("skip-scan", false, "Skip the boot-time directory scan")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *storageDir != "" {
		cfg.Storage.Dir = *storageDir
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Discover binaries staged before this boot.
	if !*skipScan {
		srv.Manager().ScanAll()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
