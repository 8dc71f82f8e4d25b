// Command demoorigin starts a local origin server for exercising the snag
// client: a stylesheet, redirect chains of any length, a gzip variant and an
// endpoint that never answers.
// Usage: go run ./cmd/demoorigin [port]
// Default port: 9999
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/antonvyukov/snag/internal/demoorigin"
	"github.com/antonvyukov/snag/internal/logging"
)

func main() {
	cfg := demoorigin.DefaultConfig()

	// Optional: custom port from command line
	if len(os.Args) > 1 {
		port, err := strconv.Atoi(os.Args[1])
		if err != nil || port < 1 || port > 65535 {
			log.Fatalf("Invalid port: %s", os.Args[1])
		}
		cfg.Port = port
	}

	fmt.Printf("Demo origin starting on http://localhost:%d\n", cfg.Port)
	fmt.Printf("Try: snag get http://localhost:%d/chain/10\n", cfg.Port)

	server := demoorigin.NewServer(cfg, logging.NewStderrLogger("demoorigin", logging.LevelInfo))
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
