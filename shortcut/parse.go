package shortcut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/csmith/steamicons/model"
)

var (
	// ErrNoGameID indicates the shortcut has no recognisable Steam game URL
	ErrNoGameID = errors.New("no Steam game URL found")
	// ErrNoIconFile indicates the shortcut has no recognisable IconFile line
	ErrNoIconFile = errors.New("no icon file found")
	// ErrDuplicateField indicates a field appeared more than once
	ErrDuplicateField = errors.New("duplicate field")
	// ErrIconDirMismatch indicates the IconFile line points outside the icon directory
	ErrIconDirMismatch = errors.New("unrecognised icon directory")
)

var (
	runGameIDRegex = regexp.MustCompile(`^URL=steam://rungameid/(\d+)$`)
	webGameIDRegex = regexp.MustCompile(`^URL=https?://(?:store\.steampowered\.com|steamcommunity\.com)/app/(\d+)(?:[/?].*)?$`)
	iconFileRegex  = regexp.MustCompile(`^IconFile=(.*\\)([^.\\]+\.ico)$`)
)

// Parse extracts the game ID and icon filename from the [InternetShortcut]
// section of a .url file. The directory part of the IconFile line must match
// iconDir. Any missing, duplicated or unrecognised field is an error; callers
// treat parse errors as per-file and skip the shortcut.
func Parse(r io.Reader, iconDir string) (model.Shortcut, error) {
	var gameID, iconFilename string
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case line == "[InternetShortcut]":
			inSection = true
		case !inSection:
			continue
		case strings.HasPrefix(line, "["):
			inSection = false
		default:
			if id, ok := matchGameID(line); ok {
				if gameID != "" {
					return model.Shortcut{}, fmt.Errorf("%w: URL", ErrDuplicateField)
				}
				gameID = id
				continue
			}

			if captures := iconFileRegex.FindStringSubmatch(line); captures != nil {
				if iconFilename != "" {
					return model.Shortcut{}, fmt.Errorf("%w: IconFile", ErrDuplicateField)
				}
				if !sameDir(captures[1], iconDir) {
					return model.Shortcut{}, fmt.Errorf("%w: %q", ErrIconDirMismatch, captures[1])
				}
				iconFilename = captures[2]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return model.Shortcut{}, fmt.Errorf("reading shortcut: %w", err)
	}

	if gameID == "" {
		return model.Shortcut{}, ErrNoGameID
	}
	if iconFilename == "" {
		return model.Shortcut{}, ErrNoIconFile
	}

	return model.Shortcut{GameID: gameID, IconFilename: iconFilename}, nil
}

// matchGameID extracts the game ID from a URL= line. Both the
// steam://rungameid form and store/community app page links are accepted.
func matchGameID(line string) (string, bool) {
	if captures := runGameIDRegex.FindStringSubmatch(line); captures != nil {
		return captures[1], true
	}
	if captures := webGameIDRegex.FindStringSubmatch(line); captures != nil {
		return captures[1], true
	}
	return "", false
}

// sameDir compares Windows directory paths ignoring case and any trailing
// backslash.
func sameDir(a, b string) bool {
	return strings.EqualFold(strings.TrimRight(a, `\`), strings.TrimRight(b, `\`))
}
