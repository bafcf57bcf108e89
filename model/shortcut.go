package model

// Shortcut represents a parsed Steam internet shortcut
type Shortcut struct {
	GameID       string
	IconFilename string
}
