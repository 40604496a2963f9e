// Copyright 2025 The FuzzDex Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the fuzzy dictionary server and CLI [DBG] application.

FuzzDex provides fast fuzzy phrase lookup over an in-memory trigram index.
Phrases are identified by caller-supplied integer indices and found by a
possibly misspelled must token, with optional should tokens to break ties and
optional constraint filtering. It can operate as a MessagePack IPC server for
integration with address-entry frontends, or as a CLI application for testing
and debugging.

The engine indexes each phrase once at startup and then seals the index;
every search afterwards is read-only, so concurrent lookups need no locking
beyond the built-in heatmap cache.

# Usage

Start the server over a phrase file with default settings:

	fuzzdex -data phrases.tsv

Use a custom config and enable debug mode:

	fuzzdex -data phrases.tsv -config /path/to/config.toml -d

Run in CLI mode for interactive testing:

	fuzzdex -data phrases.tsv -c -limit 10 -dist 2

The phrase file is line oriented, one phrase per line:

	index<TAB>phrase[<TAB>constraint,constraint,...]

# Configuration

Runtime configuration is managed through a TOML file that supports engine
parameters, server limits, and CLI defaults:

	[engine]
	cache_size = 4096
	scan_cutoff = 0.0

	[server]
	max_limit = 64
	default_limit = 10
	default_max_distance = 2
	max_token_length = 60

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Search requests
are processed synchronously with microsecond timing information included in
responses.

Send a search request:

	{"id": "req1", "op": "search", "m": "warszawa", "d": 2, "l": 10}

Receive hits ranked by trigram score:

	{"id": "req1", "h": [{"o": "Warsaw", "i": 1, "t": "warsaw", "d": 2}], "c": 1, "t": 145}

Suggest requests complete a token prefix over the indexed vocabulary, and the
stats op reports index and cache counters.

# Server Mode

The default mode starts a MessagePack IPC server that processes search
requests from stdin and writes responses to stdout. This design enables
integration with other applications through process communication.

	srv := server.NewServer(index, appConfig)
	err := srv.Start()

All logging goes to stderr; stdout belongs to the IPC stream.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging search
behavior. It reads query lines from stdin, treats the first word as the must
token and the rest as should tokens, and displays ranked hits.

	inputHandler := cli.NewInputHandler(index, limit, maxDistance, constraint, noFilter)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode.

# Command Line Flags

The following flags control application behavior:

	-data string
	    Phrase file to index (index<TAB>phrase[<TAB>constraints])
	-config string
	    Custom config file path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of hits to return in CLI mode (default from config)
	-dist int
	    Maximum Levenshtein distance for CLI hits
	-constraint int
	    Only return phrases carrying this constraint (-1 for none)
	-cache int
	    Heatmap cache capacity (0 disables caching)
	-no-filter
	    Disable input filtering for debugging
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/fuzzdex/fuzzdex/internal/cli"
	"github.com/fuzzdex/fuzzdex/internal/logger"
	"github.com/fuzzdex/fuzzdex/pkg/config"
	"github.com/fuzzdex/fuzzdex/pkg/fuzzdex"
	"github.com/fuzzdex/fuzzdex/pkg/loader"
	"github.com/fuzzdex/fuzzdex/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "fuzzdex"
	gh      = "https://github.com/fuzzdex/fuzzdex"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to build the index and spawn the server or CLI.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	dataFile := flag.String("data", "", "Phrase file to index (index<TAB>phrase[<TAB>constraints])")
	configPath := flag.String("config", "", "Custom config file path")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of hits to return")
	maxDistance := flag.Int("dist", defaultConfig.CLI.DefaultMaxDistance, "Maximum Levenshtein distance between must token and hit token")
	constraint := flag.Int("constraint", -1, "Only return phrases carrying this constraint (-1 for none)")
	cacheSize := flag.Int("cache", defaultConfig.Engine.CacheSize, "Heatmap cache capacity (0 disables caching)")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.NoFilter, "Disable input filtering (DBG only) - passes repetitive and symbol-only queries through")

	flag.Parse()

	if *showVersion {
		banner := logger.Default("")

		styles := log.DefaultStyles()

		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["version"] = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})

		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})

		banner.SetStyles(styles)

		banner.Print("")
		banner.Print("[ FuzzDex ] Fuzzy phrase lookups, really fast!")
		banner.Print("", "version", Version)
		banner.Print("")
		banner.Print("use -h or --help to see available options")
		banner.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activePath))

	// Flags override file values.
	if *cacheSize != defaultConfig.Engine.CacheSize {
		appConfig.Engine.CacheSize = *cacheSize
	}

	log.Debugf("Init index: cacheSize=[%d], scanCutoff=[%.2f]",
		appConfig.Engine.CacheSize, appConfig.Engine.ScanCutoff)
	index := fuzzdex.NewWithCacheSize(appConfig.Engine.CacheSize)

	if *dataFile != "" {
		added, err := loader.LoadFile(index, *dataFile)
		if err != nil {
			log.Fatalf("Failed to load phrases: %v", err)
			os.Exit(1)
		}
		log.Debugf("Indexed %d phrases from %s", added, *dataFile)
	} else {
		log.Warn("No phrase file specified, running with an empty index...")
	}

	if err := index.Finish(); err != nil {
		log.Fatalf("Failed to seal index: %v", err)
		os.Exit(1)
	}

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	// NOTE: Server interface has vastly different parameters compared to CLI and what it accepts.
	if *cliMode {
		log.SetReportTimestamp(false)

		var cliConstraint *int
		if *constraint >= 0 {
			cliConstraint = constraint
		}
		log.Debug("Input info:",
			"limit", *limit,
			"maxDistance", *maxDistance,
			"constraint", *constraint,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(index, *limit, *maxDistance, cliConstraint, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(index, appConfig)

	showStartupInfo(index, *dataFile)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(index *fuzzdex.Index, dataFile string) {
	pid := os.Getpid()
	stats := index.Stats()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println("  FuzzDex  ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("phrase file: ( %s )", dataFile)
	log.Infof("phrases: [ %d ], trigrams: [ %d ]", stats.Phrases, stats.Trigrams)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
