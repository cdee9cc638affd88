package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"voyage/config"
)

func valid() config.Config {
	var cfg config.Config
	cfg.Media.Driver = "local"
	cfg.Media.LocalRoot = "./uploads"

	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "local media", mutate: func(*config.Config) {}},
		{
			name: "s3 with a bucket",
			mutate: func(c *config.Config) {
				c.Media.Driver = "s3"
				c.External.S3.BucketName = "voyage-media"
			},
		},
		{
			name:    "s3 without a bucket",
			mutate:  func(c *config.Config) { c.Media.Driver = "s3" },
			wantErr: "EXTERNAL_S3_BUCKET_NAME",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *config.Config) { c.Media.Driver = "ftp" },
			wantErr: `unknown MEDIA_DRIVER "ftp"`,
		},
		{
			name:    "kafka without brokers",
			mutate:  func(c *config.Config) { c.Kafka.Enable = true },
			wantErr: "KAFKA_BROKERS",
		},
		{
			name: "rate limiter without a window",
			mutate: func(c *config.Config) {
				c.App.RateLimiter.Enable = true
				c.App.RateLimiter.MaxRequests = 60
			},
			wantErr: "rate limiter",
		},
		{
			name:    "sample ratio above one",
			mutate:  func(c *config.Config) { c.External.Otel.SampleRatio = 1.5 },
			wantErr: "SAMPLE_RATIO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	var cfg config.Config
	cfg.Kafka.Enable = true

	err := cfg.Validate()

	assert.ErrorContains(t, err, "MEDIA_DRIVER")
	assert.ErrorContains(t, err, "KAFKA_BROKERS")
}
