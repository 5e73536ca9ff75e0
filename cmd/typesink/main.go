// Command typesink injects text into the application that holds
// keyboard focus. It is the delivery end of a dictation pipeline: text
// comes in on a flag or stdin, and the engine classifies the foreground
// window, picks a strategy, and types or pastes accordingly.
//
// Usage:
//
//	echo "hello" | typesink
//	typesink -text "hello" -countdown 3
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chaz8081/typesink/internal/classify"
	"github.com/chaz8081/typesink/internal/config"
	"github.com/chaz8081/typesink/internal/inject"
	"github.com/chaz8081/typesink/internal/profile"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/typesink/config.yaml)")
	text := flag.String("text", "", "text to inject (default: read stdin)")
	countdown := flag.Int("countdown", 3, "seconds to wait before injecting, so a target can be focused")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))

	input := *text
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("reading stdin: %v", err)
		}
		input = strings.TrimRight(string(data), "\n")
	}

	classifier := classify.New()
	store := profile.NewStore(classifier)
	if cfg.ProfilePath != "" {
		if _, err := store.Reload(cfg.ProfilePath); err != nil {
			log.Fatalf("profile table: %v", err)
		}
	}

	engine := inject.NewEngine(inject.Options{
		Classifier:     classifier,
		Store:          store,
		AttemptTimeout: cfg.AttemptTimeout(),
		SettleDelay:    cfg.SettleDelay(),
	})

	printBanner(cfg, input)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for i := *countdown; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		select {
		case <-time.After(time.Second):
		case <-ctx.Done():
			fmt.Println("Cancelled.")
			return
		}
	}

	res := engine.InjectText(ctx, input)
	if !res.Success {
		log.Printf("injection failed: category=%s strategy=%s attempts=%d cause=%s",
			res.Category, res.Strategy, res.Attempts, res.ErrorKind)
		os.Exit(1)
	}

	log.Printf("injected %d chars via %s into %s in %s (attempts: %d, validated: %t)",
		len(input), res.Strategy, res.Category, res.Latency.Round(time.Millisecond), res.Attempts, res.Validated)
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		log.Printf("Config loaded from %s", defaultPath)
		return cfg, nil
	}

	log.Println("No config file found, using defaults")
	return config.Default(), nil
}

// printBanner displays the startup configuration summary.
func printBanner(cfg *config.Config, input string) {
	fmt.Println("=== typesink ===")
	fmt.Printf("  Text:     %d chars\n", len(input))
	fmt.Printf("  Profiles: %s\n", orBuiltin(cfg.ProfilePath))
	fmt.Printf("  Timeout:  %dms/attempt, settle %dms\n", cfg.AttemptTimeoutMS, cfg.SettleDelayMS)
	fmt.Printf("  Log:      %s\n", cfg.LogLevel)
	fmt.Println("================")
	fmt.Println("Focus the target window now!")
}

func orBuiltin(path string) string {
	if path == "" {
		return "built-in defaults"
	}
	return path
}
