package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/ytdlp-manager/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
	FragmentMark   = "#"
)

// YouTubeVideoURLTemplate builds a watch URL from a video id
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// playlistFetcher lists the videos of a playlist id
type playlistFetcher func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)

// PlaylistExpander turns a playlist URL into individual video URLs
type PlaylistExpander struct {
	timeout time.Duration
	fetch   playlistFetcher
}

// NewPlaylistExpander creates an expander backed by the ytdlp library
func NewPlaylistExpander() *PlaylistExpander {
	return &PlaylistExpander{
		timeout: DefaultPlaylistTimeout,
		fetch:   fetchWithYtdlp,
	}
}

// SetTimeout sets the timeout for a single expansion
func (p *PlaylistExpander) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether url carries a playlist id
func IsPlaylistURL(url string) bool {
	return ExtractPlaylistID(url) != ""
}

// ExtractPlaylistID returns the value of the list= parameter, or ""
func ExtractPlaylistID(url string) string {
	_, after, found := strings.Cut(url, PlaylistParam)
	if !found {
		return ""
	}
	after, _, _ = strings.Cut(after, ParamSeparator)
	after, _, _ = strings.Cut(after, FragmentMark)
	return after
}

// Expand lists the videos of the playlist referenced by url
func (p *PlaylistExpander) Expand(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	return &model.Playlist{
		ID:      playlistID,
		URL:     url,
		Entries: entries,
	}, nil
}

func fetchWithYtdlp(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, model.PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}
