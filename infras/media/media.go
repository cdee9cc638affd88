package media

//go:generate go run go.uber.org/mock/mockgen -source=./media.go -destination=./mocks/media_mock.go -package=mocks

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"voyage/config"
	"voyage/infras/otel"
	"voyage/infras/s3"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	DriverS3    = "s3"
	DriverLocal = "local"

	otelAttrRef = "media.ref"
)

// Store holds binary image content keyed by an opaque reference.
// Delete never returns an error: a false result means the object may still exist.
type Store interface {
	Put(ctx context.Context, body io.Reader, suggestedPath, contentType string, size int64) (ref string, err error)
	Delete(ctx context.Context, ref string) bool
	URLFor(ref string) string
}

// Servable is implemented by stores whose objects are served by this process.
type Servable interface {
	FileSystem() http.FileSystem
}

// New selects the backend configured by MEDIA_DRIVER.
func New(cfg *config.Config, otl otel.Otel) Store {
	switch cfg.Media.Driver {
	case DriverS3:
		log.Info().Str("bucket", cfg.External.S3.BucketName).Msg("media store backed by S3")

		return NewS3Store(s3.New(cfg, otl), otl)
	default:
		log.Info().Str("root", cfg.Media.LocalRoot).Msg("media store backed by local filesystem")

		fs := afero.NewBasePathFs(afero.NewOsFs(), cfg.Media.LocalRoot)

		return NewLocalStore(fs, cfg.Media.PublicBaseURL, otl)
	}
}

// ObjectKey turns a suggested path such as "places/beach.jpg" into a unique
// key under the same directory, keeping the extension.
func ObjectKey(suggestedPath string) string {
	cleaned := strings.TrimPrefix(path.Clean("/"+suggestedPath), "/")
	dir, file := path.Split(cleaned)

	name := uuid.NewString()
	if ext := strings.ToLower(path.Ext(file)); ext != "" {
		name += ext
	}

	return path.Join(dir, name)
}
