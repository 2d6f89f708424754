package download

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected lineUpdate
	}{
		{
			name:     "progress with ETA",
			line:     "[download]  42.3% of   10.00MiB at    1.00MiB/s ETA 00:06",
			expected: lineUpdate{Progress: 0.423, ETASec: 6},
		},
		{
			name:     "progress with hour ETA",
			line:     "[download]   1.0% of ~  2.00GiB at  500.00KiB/s ETA 01:10:05",
			expected: lineUpdate{Progress: 0.01, ETASec: 4205},
		},
		{
			name:     "finished progress",
			line:     "[download] 100% of   10.00MiB in 00:00:09 at 1.10MiB/s",
			expected: lineUpdate{Progress: 1, ETASec: -1},
		},
		{
			name:     "destination",
			line:     "[download] Destination: /home/me/Downloads/Song.webm",
			expected: lineUpdate{Progress: -1, ETASec: -1, OutputPath: "/home/me/Downloads/Song.webm"},
		},
		{
			name:     "merger",
			line:     `[Merger] Merging formats into "/home/me/Downloads/Clip.mkv"`,
			expected: lineUpdate{Progress: -1, ETASec: -1, OutputPath: "/home/me/Downloads/Clip.mkv"},
		},
		{
			name:     "extract audio",
			line:     "[ExtractAudio] Destination: /tmp/a.mp3",
			expected: lineUpdate{Progress: -1, ETASec: -1, OutputPath: "/tmp/a.mp3"},
		},
		{
			name:     "already downloaded",
			line:     "[download] /tmp/x.mp4 has already been downloaded",
			expected: lineUpdate{Progress: 1, ETASec: -1, OutputPath: "/tmp/x.mp4"},
		},
		{
			name:     "noise",
			line:     "[youtube] dQw4w9WgXcQ: Downloading webpage",
			expected: lineUpdate{Progress: -1, ETASec: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLine(tt.line)
			if diff := got.Progress - tt.expected.Progress; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Progress = %v, expected %v", got.Progress, tt.expected.Progress)
			}
			if got.ETASec != tt.expected.ETASec {
				t.Errorf("ETASec = %d, expected %d", got.ETASec, tt.expected.ETASec)
			}
			if got.OutputPath != tt.expected.OutputPath {
				t.Errorf("OutputPath = %q, expected %q", got.OutputPath, tt.expected.OutputPath)
			}
		})
	}

	if !parseLine("random").empty() {
		t.Error("expected empty update for unrelated line")
	}
}
