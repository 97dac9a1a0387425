package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/himanishpuri/SongDash/pkg/logger"
	"github.com/himanishpuri/SongDash/pkg/songdash"
)

var (
	port           int
	dataPath       string
	engine         string
	allowedOrigins string
	logLevel       string
	noColor        bool
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&dataPath, "data", getEnvOrDefault("SONGDASH_DATA_PATH", songdash.DefaultDataFile), "Path to the songs CSV")
	flag.StringVar(&engine, "engine", getEnvOrDefault("SONGDASH_ENGINE", songdash.EngineMemory), "Query engine: memory or sqlite")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or fatal (env: SONGDASH_LOG_LEVEL)")
	flag.BoolVar(&noColor, "no-color", false, "Disable coloured log output")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseOrigins(raw string) []string {
	if raw == "*" {
		return []string{"*"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

func main() {
	flag.Parse()
	if err := logger.Setup(logLevel, noColor); err != nil {
		logger.Fatalf("Invalid logging flags: %v", err)
	}
	log := logger.GetLogger()
	logger.Infof("Loading %s with the %s engine", dataPath, engine)
	if allowedOrigins == "*" {
		logger.Warnf("CORS allows every origin")
	}

	service, err := songdash.NewService(
		songdash.WithDataPath(dataPath),
		songdash.WithEngine(engine),
		songdash.WithLogger(log),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	config := &ServerConfig{
		Port:           port,
		DataPath:       dataPath,
		Engine:         engine,
		AllowedOrigins: parseOrigins(allowedOrigins),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := NewServer(service, config)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
