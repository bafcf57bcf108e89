package model

// Fetcher retrieves icon images from a remote source
type Fetcher interface {
	FetchIcon(gameID, iconFilename string) ([]byte, error)
}
