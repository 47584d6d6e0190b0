package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoEmbedURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "youtube watch link",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtube watch link with extra params",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "youtu.be short link",
			raw:  "https://youtu.be/dQw4w9WgXcQ?si=abc",
			want: "https://www.youtube.com/embed/dQw4w9WgXcQ",
		},
		{
			name: "vimeo link",
			raw:  "https://vimeo.com/76979871",
			want: "https://player.vimeo.com/video/76979871",
		},
		{
			name: "vimeo link with query",
			raw:  "https://vimeo.com/76979871?autoplay=1",
			want: "https://player.vimeo.com/video/76979871",
		},
		{
			name: "unrecognized URL passes through",
			raw:  "https://example.com/v.mp4",
			want: "https://example.com/v.mp4",
		},
		{
			name: "empty stays empty",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VideoEmbedURL(tt.raw))
		})
	}
}
