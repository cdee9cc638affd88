package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"voyage/infras/otel"
	"voyage/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	localDirPerm  = 0o755
	localMountURL = "/media"
)

type localStore struct {
	fs      afero.Fs
	baseURL string
	otel    otel.Otel
}

// NewLocalStore keeps objects on fs. URLs are baseURL + "/" + ref, or a path
// under /media when no base URL is configured.
func NewLocalStore(fs afero.Fs, baseURL string, otl otel.Otel) Store {
	if baseURL == constant.Empty {
		baseURL = localMountURL
	}

	return &localStore{fs: fs, baseURL: strings.TrimSuffix(baseURL, "/"), otel: otl}
}

func (store *localStore) Put(ctx context.Context, body io.Reader, suggestedPath, _ string, _ int64) (ref string, err error) {
	_, scope := store.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".local.Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ref = ObjectKey(suggestedPath)
	scope.SetAttribute(otelAttrRef, ref)

	if err = store.fs.MkdirAll(path.Dir(ref), localDirPerm); err != nil {
		return constant.Empty, fmt.Errorf("failed to create media directory: %w", err)
	}

	file, err := store.fs.Create(ref)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to create media file: %w", err)
	}
	defer file.Close()

	if _, err = io.Copy(file, body); err != nil {
		_ = store.fs.Remove(ref)

		return constant.Empty, fmt.Errorf("failed to write media file: %w", err)
	}

	return ref, nil
}

func (store *localStore) Delete(ctx context.Context, ref string) bool {
	_, scope := store.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".local.Delete")
	defer scope.End()

	scope.SetAttribute(otelAttrRef, ref)

	if ref == constant.Empty {
		return true
	}

	err := store.fs.Remove(store.key(ref))
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return true
	}

	scope.TraceError(err)
	log.Warn().Err(err).Str("ref", ref).Msg("media delete failed")

	return false
}

func (store *localStore) URLFor(ref string) string {
	if ref == constant.Empty || isURL(ref) {
		return ref
	}

	return store.baseURL + "/" + ref
}

func (store *localStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(store.fs).Dir("/")
}

func (store *localStore) key(ref string) string {
	return strings.TrimPrefix(strings.TrimPrefix(ref, store.baseURL), "/")
}
