package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voyage/config"
)

func TestPublicURLAndKey(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://media.voyage.test/"
	cfg.External.S3.APIEndpoint = "https://acct.r2.example.com"
	cfg.External.S3.BucketName = "voyage"

	svc := &s3Impl{Config: cfg}

	assert.Equal(t, "https://media.voyage.test/places/bali.webp", svc.PublicURL("places/bali.webp"))

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://media.voyage.test/places/bali.webp", want: "places/bali.webp"},
		{url: "https://acct.r2.example.com/voyage/gallery/a.png", want: "gallery/a.png"},
		{url: "https://elsewhere.test/places/bali.webp", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.KeyFromURL(tt.url))
		})
	}
}

func TestKeyFromURL_NoPublicDomain(t *testing.T) {
	svc := &s3Impl{Config: &config.Config{}}

	assert.Empty(t, svc.KeyFromURL("https://anything.test/a.png"))
}
