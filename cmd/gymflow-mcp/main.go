package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/config"
	gymmcp "github.com/claude/gymflow/internal/mcp"
	"github.com/claude/gymflow/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("url", "", "GymFlow server URL (e.g. https://gymflow.tail1234.ts.net); serves from the REST API")
	configPath := flag.String("config", "", "path to config file; serves from the configured database")
	user := flag.String("user", gymmcp.LocalLogin, "login whose profile is read in database mode")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymflow-mcp", Version)
		return
	}

	// stdout carries the MCP protocol, so logs go to stderr
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds gymmcp.DataSource
	switch {
	case *serverURL != "":
		ds = gymmcp.NewHTTPClient(*serverURL)
		log.Info("remote mode", "url", *serverURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		if !cfg.Database.Enabled() {
			log.Error("config has no database; use -url to read from a running server")
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ds = &gymmcp.Local{
			Catalog: catalog.Builtin(),
			Profiles: func(ctx context.Context) (gymmcp.ProfileReader, error) {
				id, err := db.GetOrCreateUser(ctx, *user, *user)
				if err != nil {
					return nil, fmt.Errorf("resolving user %s: %w", *user, err)
				}
				return db.ForUser(id), nil
			},
		}
		log.Info("database mode", "user", *user)
	default:
		fmt.Fprintf(os.Stderr, "Usage: gymflow-mcp -url <server URL> | -config <config.yaml> [-user login]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	s := gymmcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("serve MCP failed", "error", err)
		os.Exit(1)
	}
}
