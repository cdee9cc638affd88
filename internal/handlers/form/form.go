// Package form reads multipart and urlencoded request bodies into service inputs.
package form

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"voyage/internal/attachment"
	"voyage/shared"
	"voyage/shared/constant"
	"voyage/shared/failure"

	"github.com/rs/zerolog/log"
)

// Form wraps a parsed request and owns every file it opens.
type Form struct {
	request *http.Request
	closers []io.Closer
}

// Parse accepts multipart/form-data and falls back to urlencoded bodies.
// Bodies over RequestMaxBody fail with 413, anything unreadable with 400.
func Parse(request *http.Request) (*Form, error) {
	request.Body = http.MaxBytesReader(nil, request.Body, constant.RequestMaxBody)

	err := request.ParseMultipartForm(constant.RequestMaxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = request.ParseForm()
	}

	var tooLarge *http.MaxBytesError

	switch {
	case err == nil:
		return &Form{request: request}, nil
	case errors.As(err, &tooLarge):
		return nil, failure.PayloadTooLarge("request body too large") //nolint:wrapcheck
	default:
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}
}

// Close releases opened files and temporary spill files.
func (f *Form) Close() {
	for _, closer := range f.closers {
		_ = closer.Close()
	}

	if f.request.MultipartForm != nil {
		if err := f.request.MultipartForm.RemoveAll(); err != nil {
			log.Warn().Err(err).Msg("failed to remove multipart temp files")
		}
	}
}

// Has reports whether the field was sent at all, even empty.
func (f *Form) Has(field string) bool {
	_, ok := f.request.Form[field]
	if !ok && f.request.MultipartForm != nil {
		_, ok = f.request.MultipartForm.Value[field]
	}

	return ok
}

func (f *Form) Value(field string) string {
	return strings.TrimSpace(f.request.FormValue(field))
}

// String returns nil when the field is absent so partial updates can skip it.
func (f *Form) String(field string) *string {
	if !f.Has(field) {
		return nil
	}

	value := f.Value(field)

	return &value
}

func (f *Form) Bool(field string) bool {
	value := shared.ConvertStringToBool(f.Value(field))

	return value != nil && *value
}

// Float parses a numeric field. It returns nil when the field is absent or blank.
func (f *Form) Float(field string) (*float64, error) {
	value := f.Value(field)
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, invalid(field, "a number")
	}

	return &number, nil
}

func (f *Form) Int(field string) (*int, error) {
	value := f.Value(field)
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	number, err := shared.ConvertStringToInt(value)
	if err != nil {
		return nil, invalid(field, "an integer")
	}

	return &number, nil
}

// File returns the first part named field, or nil.
func (f *Form) File(field string) *attachment.Upload {
	files := f.Files(field)
	if len(files) == 0 {
		return nil
	}

	return files[0]
}

func (f *Form) Files(field string) []*attachment.Upload {
	if f.request.MultipartForm == nil {
		return nil
	}

	uploads := []*attachment.Upload{}

	for _, header := range f.request.MultipartForm.File[field] {
		upload, err := f.open(header)
		if err != nil {
			log.Error().Err(err).Str("field", field).Msg("failed to open uploaded file")

			continue
		}

		uploads = append(uploads, upload)
	}

	return uploads
}

// FileFields lists the names of every file part, sorted.
func (f *Form) FileFields() []string {
	if f.request.MultipartForm == nil {
		return nil
	}

	fields := make([]string, 0, len(f.request.MultipartForm.File))
	for field := range f.request.MultipartForm.File {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	return fields
}

func (f *Form) open(header *multipart.FileHeader) (*attachment.Upload, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	f.closers = append(f.closers, file)

	return &attachment.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get(constant.RequestHeaderContentType),
		Size:        header.Size,
		Body:        file,
	}, nil
}

func invalid(field, kind string) error {
	msg := field + " must be " + kind

	return failure.Validation(msg, map[string]any{field: msg}) //nolint:wrapcheck
}
