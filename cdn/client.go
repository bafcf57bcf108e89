package cdn

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/csmith/steamicons/model"
)

// DefaultBaseURL is Steam's public content delivery network.
const DefaultBaseURL = "https://cdn.cloudflare.steamstatic.com"

// maxErrorBody limits how much of an error response is kept for reporting.
const maxErrorBody = 200

// Client fetches app icons from the Steam CDN
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// FetchError describes a failed icon download
type FetchError struct {
	GameID     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching icon for game %s: %v", e.GameID, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("fetching icon for game %s: HTTP %d - %s", e.GameID, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("fetching icon for game %s: HTTP %d", e.GameID, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IconURL returns the CDN URL for a game's icon
func (c *Client) IconURL(gameID, iconFilename string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/steamcommunity/public/images/apps/%s/%s", base, gameID, iconFilename)
}

// FetchIcon downloads an icon from the CDN. A single GET is made; any
// transport error or non-2xx status is returned as a *FetchError.
func (c *Client) FetchIcon(gameID, iconFilename string) ([]byte, error) {
	url := c.IconURL(gameID, iconFilename)

	slog.Debug("Downloading icon", "game_id", gameID, "url", url)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, &FetchError{GameID: gameID, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &FetchError{
			GameID:     gameID,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{GameID: gameID, URL: url, Err: err}
	}

	slog.Debug("Downloaded icon", "game_id", gameID, "bytes", len(data))
	return data, nil
}

var _ model.Fetcher = &Client{}
