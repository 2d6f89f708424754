package download

import "github.com/ytget/ytdlp-manager/internal/binary"

// yt-dlp flags
const (
	FlagNewline        = "--newline"
	FlagNoColors       = "--no-colors"
	FlagNoPlaylist     = "--no-playlist"
	FlagPaths          = "-P"
	FlagOutput         = "-o"
	FlagCookiesBrowser = "--cookies-from-browser"
	FlagFFmpegLocation = "--ffmpeg-location"

	// EndOfOptions stops yt-dlp option parsing so the URL is never read as a flag
	EndOfOptions = "--"
)

// BuildArgs builds the yt-dlp argument list for a job
func BuildArgs(res *binary.Resolution, req Request) []string {
	args := []string{
		FlagNewline,
		FlagNoColors,
		FlagNoPlaylist,
		FlagPaths, req.OutputDir,
		FlagOutput, req.Template,
	}

	if req.CookieBrowser != "" {
		args = append(args, FlagCookiesBrowser, req.CookieBrowser)
	}

	if res != nil && res.FFmpeg != "" {
		args = append(args, FlagFFmpegLocation, res.FFmpeg)
	}

	return append(args, EndOfOptions, req.URL)
}
