package restore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/csmith/steamicons/model"
	"github.com/csmith/steamicons/shortcut"
)

// State is the terminal state of one shortcut file
type State int

const (
	ParseFailed State = iota
	Skipped
	Written
	WouldWrite
	FetchFailed
	WriteFailed
)

func (s State) String() string {
	switch s {
	case ParseFailed:
		return "parse_failed"
	case Skipped:
		return "skipped"
	case Written:
		return "written"
	case WouldWrite:
		return "would_write"
	case FetchFailed:
		return "fetch_failed"
	case WriteFailed:
		return "write_failed"
	default:
		return "unknown"
	}
}

// Outcome records how one shortcut file ended up
type Outcome struct {
	File         string
	GameID       string
	IconFilename string
	State        State
	Err          error
}

// Summary aggregates the outcomes of one run
type Summary struct {
	Scanned     int
	Written     int
	Skipped     int
	WouldWrite  int
	ParseFailed int
	FetchFailed int
	WriteFailed int
	Outcomes    []Outcome
}

// Pipeline restores missing icons for the shortcuts in one directory
type Pipeline struct {
	ShortcutDir string
	IconDir     string
	Store       model.Store
	Fetcher     model.Fetcher
	DryRun      bool
}

// Run processes every shortcut in the directory, one at a time. Per-file
// failures are logged, recorded in the summary, and never stop the run; the
// only error returned is a failure to enumerate the directory.
func (p *Pipeline) Run() (Summary, error) {
	files, err := shortcut.Scan(p.ShortcutDir)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Scanned: len(files)}
	for _, file := range files {
		outcome := p.process(file)
		summary.add(outcome)
	}

	return summary, nil
}

// process takes a single shortcut file through
// parse -> presence check -> fetch -> write.
func (p *Pipeline) process(file string) Outcome {
	sc, err := p.parse(file)
	if err != nil {
		slog.Warn("Skipping unparseable shortcut", "file", file, "error", err)
		return Outcome{File: file, State: ParseFailed, Err: err}
	}

	outcome := Outcome{File: file, GameID: sc.GameID, IconFilename: sc.IconFilename}

	exists, err := p.Store.Exists(sc.IconFilename)
	if err != nil {
		slog.Error("Failed to check for existing icon", "file", file, "icon", sc.IconFilename, "error", err)
		outcome.State, outcome.Err = WriteFailed, err
		return outcome
	}
	if exists {
		slog.Info("Icon already exists", "game_id", sc.GameID, "icon", sc.IconFilename)
		outcome.State = Skipped
		return outcome
	}

	if p.DryRun {
		slog.Info("Would download icon", "game_id", sc.GameID, "icon", sc.IconFilename)
		outcome.State = WouldWrite
		return outcome
	}

	data, err := p.Fetcher.FetchIcon(sc.GameID, sc.IconFilename)
	if err != nil {
		slog.Error("Failed to download icon", "game_id", sc.GameID, "icon", sc.IconFilename, "error", err)
		outcome.State, outcome.Err = FetchFailed, err
		return outcome
	}

	if err := p.Store.Write(sc.IconFilename, data); err != nil {
		slog.Error("Failed to save icon", "game_id", sc.GameID, "icon", sc.IconFilename, "error", err)
		outcome.State, outcome.Err = WriteFailed, err
		return outcome
	}

	slog.Info("Restored icon", "game_id", sc.GameID, "icon", sc.IconFilename, "bytes", len(data))
	outcome.State = Written
	return outcome
}

func (p *Pipeline) parse(file string) (model.Shortcut, error) {
	f, err := os.Open(file)
	if err != nil {
		return model.Shortcut{}, fmt.Errorf("opening shortcut: %w", err)
	}
	defer f.Close()

	return shortcut.Parse(f, p.IconDir)
}

func (s *Summary) add(outcome Outcome) {
	s.Outcomes = append(s.Outcomes, outcome)
	switch outcome.State {
	case ParseFailed:
		s.ParseFailed++
	case Skipped:
		s.Skipped++
	case Written:
		s.Written++
	case WouldWrite:
		s.WouldWrite++
	case FetchFailed:
		s.FetchFailed++
	case WriteFailed:
		s.WriteFailed++
	}
}
