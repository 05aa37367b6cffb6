package service

import (
	"context"
	"regexp"

	"github.com/windoze95/recipefinder-api/internal/models"
)

var youTubeIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|embed/)([\w-]{11})`)

// ExtractYouTubeID returns the 11 character video id from a YouTube URL.
func ExtractYouTubeID(videoURL string) (string, bool) {
	m := youTubeIDPattern.FindStringSubmatch(videoURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// VideoTimestamper derives labelled moments for a YouTube video.
type VideoTimestamper interface {
	// Supported reports whether the implementation can produce timestamps.
	Supported() bool
	// Timestamps returns the labelled moments of the video. It never fails;
	// an unknown video yields an empty list.
	Timestamps(ctx context.Context, videoID string) []models.VideoTimestamp
}

// UnsupportedTimestamper is the VideoTimestamper used while no timestamp
// source exists. It always returns an empty list.
type UnsupportedTimestamper struct{}

func (UnsupportedTimestamper) Supported() bool { return false }

func (UnsupportedTimestamper) Timestamps(context.Context, string) []models.VideoTimestamp {
	return []models.VideoTimestamp{}
}
