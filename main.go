package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/csmith/envflag/v2"
	"github.com/csmith/slogflags"
	"github.com/csmith/steamicons/cdn"
	"github.com/csmith/steamicons/history"
	"github.com/csmith/steamicons/icons"
	"github.com/csmith/steamicons/restore"
)

var (
	shortcutDir = flag.String("shortcut-dir", ".", "Directory to scan for .url shortcut files")
	iconDir     = flag.String("icon-dir", `C:\Program Files (x86)\Steam\steam\games`, "Steam icon cache directory to restore icons into")
	dryRun      = flag.Bool("dry-run", false, "Report missing icons without downloading or writing anything")
	historyDB   = flag.String("history-db", "", "Path to a SQLite database to record runs in. If empty, no history is kept.")
)

func main() {
	envflag.Parse()
	_ = slogflags.Logger(slogflags.WithSetDefault(true))

	store := &icons.Store{Dir: *iconDir}
	if !*dryRun {
		if err := store.CheckDir(); err != nil {
			slog.Error("Icon directory is not usable", "error", err)
			os.Exit(1)
		}
	}

	pipeline := &restore.Pipeline{
		ShortcutDir: *shortcutDir,
		IconDir:     *iconDir,
		Store:       store,
		Fetcher:     &cdn.Client{},
		DryRun:      *dryRun,
	}

	slog.Info("Processing shortcuts", "directory", *shortcutDir, "dry_run", *dryRun)

	summary, err := pipeline.Run()
	if err != nil {
		slog.Error("Failed to process shortcuts", "error", err)
		os.Exit(1)
	}

	recordHistory(summary)

	slog.Info(
		"Run complete",
		"scanned", summary.Scanned,
		"written", summary.Written,
		"skipped", summary.Skipped,
		"would_write", summary.WouldWrite,
		"parse_failed", summary.ParseFailed,
		"fetch_failed", summary.FetchFailed,
		"write_failed", summary.WriteFailed,
	)

	if summary.Written > 0 {
		slog.Info("Windows caches shortcut icons; refresh or re-open any view still showing broken ones")
	}
}

// recordHistory saves the run to the history database, if one is
// configured. Best-effort: failures are logged and never affect the run.
func recordHistory(summary restore.Summary) {
	if *historyDB == "" {
		return
	}

	store, err := history.Open(*historyDB)
	if err != nil {
		slog.Warn("Failed to open history database", "path", *historyDB, "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(summary); err != nil {
		slog.Warn("Failed to record run history", "path", *historyDB, "error", err)
	}
}
