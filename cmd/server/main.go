package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"github.com/scriptorivm/orthograph/pkg/api"
	"github.com/scriptorivm/orthograph/pkg/chassis"
	"github.com/scriptorivm/orthograph/pkg/latin"
	"github.com/scriptorivm/orthograph/pkg/ruleset"
)

const version = "1.0.0"

type config struct {
	Addr       string  `yaml:"addr"`
	RulesetDir string  `yaml:"ruleset_dir"`
	Backend    string  `yaml:"backend"`
	Pass2      *bool   `yaml:"pass2"`
	Threshold  float64 `yaml:"threshold"`
	LogLevel   string  `yaml:"log_level"`
	CertFile   string  `yaml:"cert_file"`
	KeyFile    string  `yaml:"key_file"`
	MCP        *bool   `yaml:"mcp"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		cmdServe(os.Args[2:])
	case "import":
		cmdImport(os.Args[2:])
	case "normalize":
		cmdNormalize(os.Args[2:])
	case "check":
		cmdCheck(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: orthograph <command>

Commands:
  serve      Start the HTTPS/QUIC server
  import     Build rule bundles from public Latin corpora
  normalize  Normalize text from a file or stdin
  check      Validate rule bundle directories
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	fs.Parse(args)

	var level slog.LevelVar
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))

	cfg := loadConfig(*cfgPath, logger)
	if cfg.LogLevel != "" {
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			logger.Warn("bad log_level in config, keeping info", "value", cfg.LogLevel)
		}
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		logger.Error("pipeline init failed", "error", err)
		os.Exit(1)
	}

	var current atomic.Pointer[latin.Pipeline]
	current.Store(p)
	provider := api.Provider(current.Load)
	logPipeline(logger, p)

	router := api.NewRouter(provider, logger)

	var mcpSrv *server.MCPServer
	if cfg.MCP == nil || *cfg.MCP {
		mcpSrv = server.NewMCPServer("orthograph", version)
		api.RegisterMCPTools(mcpSrv, provider, logger)
	}

	srv, err := chassis.New(chassis.Config{
		Addr:      cfg.Addr,
		CertFile:  cfg.CertFile,
		KeyFile:   cfg.KeyFile,
		Handler:   router,
		MCPServer: mcpSrv,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("chassis init failed", "error", err)
		os.Exit(1)
	}

	// SIGHUP: hot reload the rule bundle.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading ruleset", "dir", cfg.RulesetDir)
			np, err := buildPipeline(cfg)
			if err != nil {
				logger.Error("reload failed, keeping current ruleset", "error", err)
				continue
			}
			current.Store(np)
			logPipeline(logger, np)
		}
	}()

	go func() {
		logger.Info("orthograph listening", "addr", cfg.Addr)
		if err := srv.Start(ctx); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Stop(shCtx)
}

// buildPipeline assembles a pipeline from the config. Called at startup and
// again on every SIGHUP; a failed reload keeps the previous pipeline serving.
func buildPipeline(cfg config) (*latin.Pipeline, error) {
	var opts []latin.Option
	if cfg.RulesetDir != "" {
		set, err := ruleset.Load(cfg.RulesetDir)
		if err != nil {
			return nil, fmt.Errorf("load ruleset %s: %w", cfg.RulesetDir, err)
		}
		opts = append(opts, latin.WithRuleset(set))
	}
	if cfg.Backend != "" {
		opts = append(opts, latin.WithBackend(cfg.Backend))
	}
	if cfg.Pass2 != nil {
		opts = append(opts, latin.WithPass2(*cfg.Pass2))
	}
	if cfg.Threshold > 0 {
		opts = append(opts, latin.WithThreshold(cfg.Threshold))
	}
	return latin.New(opts...)
}

func logPipeline(logger *slog.Logger, p *latin.Pipeline) {
	b := p.Backend()
	m := p.Ruleset().Manifest
	logger.Info("pipeline ready",
		"ruleset", m.ID,
		"version", m.Version,
		"backend", b.Name,
		"reason", b.Reason,
		"pass2", p.Pass2(),
	)
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		Addr: ":8443",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
