package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/famish99/fakempd/internal/config"
	"github.com/famish99/fakempd/internal/library"
	"github.com/famish99/fakempd/internal/mpd"
	"github.com/famish99/fakempd/internal/player"
)

var (
	configPath  = flag.String("config", getDefaultConfigPath(), "Path to configuration file")
	listenAddr  = flag.String("listen", "", "Listen address (overrides config)")
	fixturePath = flag.String("fixture", "", "Path to a YAML fixture (overrides config)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	writeConfig = flag.Bool("write-config", false, "Write the effective configuration to --config and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	setupLogging(cfg.LogLevel)

	if *writeConfig {
		if err := config.SaveConfig(*configPath, cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to write config")
		}
		fmt.Printf("Saved configuration to %s\n", *configPath)
		return
	}

	fixture, err := loadFixture(cfg.Fixture)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load fixture")
	}

	db := library.NewDatabase(fixture.Songs, time.Now())
	state := player.New(db, fixture)

	log.Info().
		Str("listen", cfg.Listen).
		Str("version", cfg.Version).
		Int("songs", db.Len()).
		Int("outputs", len(fixture.Outputs)).
		Int("playlists", len(fixture.Playlists)).
		Msg("Configuration")

	runDaemon(mpd.NewServer(cfg.Listen, cfg.Version, state))
}

// runDaemon runs the MPD server until a signal arrives or a client kills it
func runDaemon(server *mpd.Server) {
	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start MPD server")
	}
	defer server.Stop()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case <-server.Done():
		log.Info().Msg("Server stopped by client")
	}
}

func applyFlags(cfg *config.Config) {
	if *listenAddr != "" {
		cfg.Listen = *listenAddr
	}
	if *fixturePath != "" {
		cfg.Fixture = *fixturePath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
}

func setupLogging(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func loadFixture(path string) (*library.Fixture, error) {
	if path == "" {
		return library.DefaultFixture()
	}
	return library.LoadFixture(path)
}

func getDefaultConfigPath() string {
	// Check common locations
	locations := []string{
		"./fakempd.yaml",
		filepath.Join(os.Getenv("HOME"), ".config", "fakempd", "config.yaml"),
		"/etc/fakempd/config.yaml",
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	// Default to first location if none exist
	return locations[0]
}
