package utils

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
)

// Download retrieves the resource found at uri. A 404 response is reported
// as fs.ErrNotExist so that callers can treat remote and local stores alike.
// The caller must close the returned body.
func Download(client *http.Client, uri string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download file from URI %s: %w", uri, err)
	}

	switch {
	case res.StatusCode == http.StatusNotFound || res.StatusCode == http.StatusGone:
		res.Body.Close()
		return nil, fmt.Errorf("%s: %w", uri, fs.ErrNotExist)
	case res.StatusCode != http.StatusOK:
		res.Body.Close()
		return nil, fmt.Errorf("unable to download file from URI %s, status %v", uri, res.Status)
	}
	return res.Body, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the MIME type of the provided file header.
// Only the first 512 bytes are used to sniff the content type.
func DetectContentType(header []byte) string {
	if len(header) > 512 {
		header = header[:512]
	}
	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(header)
}

// IsImage reports whether the file header belongs to an image file.
func IsImage(header []byte) bool {
	return strings.HasPrefix(DetectContentType(header), "image/")
}
