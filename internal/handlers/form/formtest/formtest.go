// Package formtest builds multipart requests for handler tests.
package formtest

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

// Part is one uploaded file; it is sent as <Field>.png with an image/png content type
// unless ContentType says otherwise.
type Part struct {
	Field       string
	Content     string
	ContentType string
}

func Multipart(t *testing.T, method, target string, values map[string]string, files ...Part) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range values {
		require.NoError(t, writer.WriteField(key, value))
	}

	for _, file := range files {
		contentType := file.ContentType
		if contentType == "" {
			contentType = "image/png"
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+file.Field+`"; filename="`+file.Field+`.png"`)
		header.Set("Content-Type", contentType)

		w, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = w.Write([]byte(file.Content))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	request := httptest.NewRequest(method, target, body)
	request.Header.Set("Content-Type", writer.FormDataContentType())

	return request
}
