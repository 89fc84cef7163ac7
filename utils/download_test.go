package utils

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtils_ShouldDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sample.txt" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "sample")
	}))
	defer srv.Close()

	body, err := Download(srv.Client(), srv.URL+"/sample.txt")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "sample", string(data))

	_, err = Download(srv.Client(), srv.URL+"/missing.png")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestUtils_ShouldBeValidUrl(t *testing.T) {
	assert.True(t, IsValidUrl("https://github.com/esimov/milsym/"))
	assert.False(t, IsValidUrl("/symbols"))
	assert.False(t, IsValidUrl("symbols/icons"))
}

func TestUtils_ShouldDetectValidFileType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))

	assert.Equal(t, "image/png", DetectContentType(buf.Bytes()))
	assert.True(t, IsImage(buf.Bytes()))
	assert.False(t, IsImage([]byte("not an image")))
}
