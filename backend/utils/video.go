package utils

import "strings"

// VideoEmbedURL turns a stored course video link into an embeddable player URL.
// YouTube and Vimeo links are recognized by domain substring; anything else is
// returned unchanged.
func VideoEmbedURL(raw string) string {
	if raw == "" {
		return raw
	}

	if strings.Contains(raw, "youtu.be") {
		videoID := after(raw, "youtu.be/")
		videoID = before(videoID, "?")
		return "https://www.youtube.com/embed/" + videoID
	}

	if strings.Contains(raw, "youtube.com") {
		videoID := after(raw, "v=")
		videoID = before(videoID, "&")
		return "https://www.youtube.com/embed/" + videoID
	}

	if strings.Contains(raw, "vimeo.com") {
		videoID := after(raw, "vimeo.com/")
		videoID = before(videoID, "?")
		return "https://player.vimeo.com/video/" + videoID
	}

	return raw
}

func after(s, sep string) string {
	if _, rest, found := strings.Cut(s, sep); found {
		return rest
	}
	return s
}

func before(s, sep string) string {
	head, _, _ := strings.Cut(s, sep)
	return head
}
