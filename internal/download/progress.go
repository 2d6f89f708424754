package download

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	percentRegex     = regexp.MustCompile(`^\[download\]\s+(\d+(?:\.\d+)?)%`)
	etaRegex         = regexp.MustCompile(`ETA\s+(?:(\d+):)?(\d+):(\d+)`)
	destinationRegex = regexp.MustCompile(`^\[(?:download|ExtractAudio)\] Destination: (.+)$`)
	mergerRegex      = regexp.MustCompile(`^\[Merger\] Merging formats into "(.+)"$`)
	alreadyRegex     = regexp.MustCompile(`^\[download\] (.+) has already been downloaded`)
)

// lineUpdate is what a single yt-dlp stdout line tells us. Negative
// Progress or ETASec means the line carried no such value.
type lineUpdate struct {
	Progress   float64
	ETASec     int
	OutputPath string
}

func (u lineUpdate) empty() bool {
	return u.Progress < 0 && u.ETASec < 0 && u.OutputPath == ""
}

// parseLine extracts progress, ETA and output file from yt-dlp output
// produced with --newline.
func parseLine(line string) lineUpdate {
	line = strings.TrimSpace(line)
	u := lineUpdate{Progress: -1, ETASec: -1}

	if m := percentRegex.FindStringSubmatch(line); m != nil {
		if p, err := strconv.ParseFloat(m[1], 64); err == nil {
			u.Progress = min(p/100.0, 1.0)
		}
		if em := etaRegex.FindStringSubmatch(line); em != nil {
			u.ETASec = parseETA(em[1], em[2], em[3])
		}
		return u
	}

	if m := destinationRegex.FindStringSubmatch(line); m != nil {
		u.OutputPath = m[1]
		return u
	}

	if m := mergerRegex.FindStringSubmatch(line); m != nil {
		u.OutputPath = m[1]
		return u
	}

	if m := alreadyRegex.FindStringSubmatch(line); m != nil {
		u.OutputPath = m[1]
		u.Progress = 1.0
		return u
	}

	return u
}

func parseETA(hours, minutes, seconds string) int {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	return h*3600 + m*60 + s
}
