package model

// PlaylistEntry is a single video discovered while expanding a playlist URL
type PlaylistEntry struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

// Playlist is the result of expanding a playlist URL into its videos
type Playlist struct {
	ID      string          `json:"id"`
	URL     string          `json:"url"`
	Entries []PlaylistEntry `json:"entries"`
}
