package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lunamoth/resona/internal/api"
	"github.com/lunamoth/resona/internal/config"
	"github.com/lunamoth/resona/internal/database"
	"github.com/lunamoth/resona/internal/logger"
	"github.com/lunamoth/resona/internal/probe"
	"github.com/lunamoth/resona/internal/structures"
	"github.com/lunamoth/resona/internal/systems"
	"github.com/lunamoth/resona/internal/version"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version")
		showFiles   = flag.Bool("files", false, "Show file locations")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		runProbe    = flag.Bool("probe", false, "Probe unimplemented catalog endpoints and print a report")
		probeAll    = flag.Bool("probe-all", false, "Probe every catalog endpoint, implemented ones included")
		searchQuery = flag.String("search", "", "Search and print matches")
		showHome    = flag.Bool("home", false, "Fetch and print the home feed")
		playlistID  = flag.String("playlist", "", "Fetch and print a playlist by id")
		artistID    = flag.String("artist", "", "Fetch and print an artist by channel id")
	)

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	configDir := configDir()
	dataDir := dataDir()

	if *showFiles {
		fmt.Printf("Config:   %s\n", filepath.Join(configDir, "config.toml"))
		fmt.Printf("Headers:  %s\n", filepath.Join(configDir, "headers.txt"))
		fmt.Printf("Database: %s\n", filepath.Join(dataDir, "library.db"))
		fmt.Printf("Log:      %s\n", filepath.Join(dataDir, "resona.log"))
		return
	}

	for _, dir := range []string{configDir, dataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", dir, err)
			os.Exit(1)
		}
	}

	cfg := loadConfig(filepath.Join(configDir, "config.toml"))

	if cfg.HeaderFile == "" {
		cfg.HeaderFile = filepath.Join(configDir, "headers.txt")
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(dataDir, "library.db")
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(dataDir, "resona.log")
	}

	debug := *debugMode || cfg.Debug

	logLevel := logger.INFO
	if debug {
		logLevel = logger.DEBUG
	}

	if err := logger.Init(cfg.LogFile, logLevel, debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open library database: %v", err)
		fmt.Fprintf(os.Stderr, "failed to open library database: %v\n", err)
		os.Exit(1)
	}

	sys := systems.New(cfg, db)
	defer sys.Stop()

	if err := sys.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "startup aborted: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *runProbe || *probeAll:
		results := probe.Run(ctx, sys.Client, *probeAll)
		fmt.Print(probe.Report(results))
	case *searchQuery != "":
		runSearch(ctx, sys, *searchQuery)
	case *showHome:
		runHome(ctx, sys)
	case *playlistID != "":
		runPlaylist(ctx, sys, *playlistID)
	case *artistID != "":
		runArtist(ctx, sys, *artistID)
	default:
		flag.Usage()
	}
}

func runSearch(ctx context.Context, sys *systems.Systems, query string) {
	results, err := sys.Client.Search(ctx, query)
	if err != nil {
		fail(err)
	}

	if results.IsEmpty() {
		fmt.Println("no matches")
		return
	}

	for _, item := range results.AllItems() {
		switch item.Type {
		case structures.HomeItemSong:
			fmt.Printf("song      %-14s %s — %s (%s)\n",
				item.Song.VideoID, item.Song.Title, item.Song.ArtistNames(), item.Song.DurationDisplay())
		case structures.HomeItemAlbum:
			fmt.Printf("album     %-14s %s\n", item.Album.ID, item.Album.Title)
		case structures.HomeItemArtist:
			fmt.Printf("artist    %-14s %s\n", item.Artist.ID, item.Artist.Name)
		case structures.HomeItemPlaylist:
			fmt.Printf("playlist  %-14s %s\n", item.Playlist.ID, item.Playlist.Title)
		}
	}
}

func runHome(ctx context.Context, sys *systems.Systems) {
	home, err := sys.Client.GetHome(ctx)
	if err != nil {
		fail(err)
	}

	for _, section := range home.Sections {
		fmt.Printf("%s (%d items)\n", section.Title, len(section.Items))
	}

	if home.Continuation != "" {
		fmt.Println("... more available")
	}
}

func runPlaylist(ctx context.Context, sys *systems.Systems, id string) {
	detail, err := sys.Client.GetPlaylist(ctx, id)
	if err != nil {
		fail(err)
	}

	fmt.Printf("%s", detail.Title)
	if detail.Author != "" {
		fmt.Printf(" — %s", detail.Author)
	}
	fmt.Println()

	for i, track := range detail.Tracks {
		fmt.Printf("%3d. %s — %s (%s)\n", i+1, track.Title, track.ArtistNames(), track.DurationDisplay())
	}
}

func runArtist(ctx context.Context, sys *systems.Systems, channelID string) {
	detail, err := sys.Client.GetArtist(ctx, channelID)
	if err != nil {
		fail(err)
	}

	fmt.Println(detail.Name)

	for _, song := range detail.Songs {
		fmt.Printf("  song   %s\n", song.Title)
	}

	for _, album := range detail.Albums {
		fmt.Printf("  album  %s (%s)\n", album.Title, album.Year)
	}
}

func fail(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(os.Stderr, "%s %s\n", apiErr.Description(), apiErr.Recovery())
	} else {
		fmt.Fprintln(os.Stderr, err)
	}

	logger.Error("command failed: %v", err)
	os.Exit(1)
}

func loadConfig(path string) *structures.Config {
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "failed to load config, using defaults: %v\n", err)
		}

		return config.Default()
	}

	return cfg
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "resona")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "resona")
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "resona")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".local", "share", "resona")
}
