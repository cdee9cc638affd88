package media

import (
	"context"
	"io"
	"strings"

	"voyage/infras/otel"
	"voyage/infras/s3"
	"voyage/shared/constant"

	"github.com/rs/zerolog/log"
)

type s3Store struct {
	client s3.S3
	otel   otel.Otel
}

func NewS3Store(client s3.S3, otl otel.Otel) Store {
	return &s3Store{client: client, otel: otl}
}

func (store *s3Store) Put(ctx context.Context, body io.Reader, suggestedPath, contentType string, size int64) (ref string, err error) {
	ctx, scope := store.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".s3.Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ref = ObjectKey(suggestedPath)
	scope.SetAttribute(otelAttrRef, ref)

	if err = store.client.PutObject(ctx, ref, contentType, body, size); err != nil {
		return constant.Empty, err //nolint:wrapcheck
	}

	return ref, nil
}

func (store *s3Store) Delete(ctx context.Context, ref string) bool {
	ctx, scope := store.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".s3.Delete")
	defer scope.End()

	key := store.key(ref)
	scope.SetAttribute(otelAttrRef, key)

	if key == constant.Empty {
		return true
	}

	if err := store.client.DeleteObject(ctx, key); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("ref", ref).Msg("media delete failed")

		return false
	}

	return true
}

func (store *s3Store) URLFor(ref string) string {
	if ref == constant.Empty || isURL(ref) {
		return ref
	}

	return store.client.PublicURL(ref)
}

// key accepts references persisted as full public URLs as well as bare keys.
func (store *s3Store) key(ref string) string {
	if isURL(ref) {
		return store.client.KeyFromURL(ref)
	}

	return ref
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
