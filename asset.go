package milsym

import (
	"archive/zip"
	"fmt"
	"image"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/esimov/milsym/utils"
)

// Store gives access to the raw bytes of the symbol assets. The absence of
// an asset is reported with an error satisfying errors.Is(err, fs.ErrNotExist).
// Implementations must be safe for concurrent reads.
type Store interface {
	Open(name string) (io.ReadCloser, error)
}

// FSStore is a Store backed by a file system: a directory, an embedded
// file system or an archive.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a Store reading the assets from fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// DirStore creates a Store reading the assets from a local directory.
func DirStore(dir string) *FSStore {
	return NewFSStore(os.DirFS(dir))
}

// Open opens the named asset. Names are slash separated and may be rooted.
func (s *FSStore) Open(name string) (io.ReadCloser, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	return s.fsys.Open(name)
}

// ZipStore is a Store backed by a zip archive.
type ZipStore struct {
	*FSStore
	rc *zip.ReadCloser
}

// OpenZipStore opens the zip archive found at path.
func OpenZipStore(path string) (*ZipStore, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the symbol archive: %w", err)
	}
	return &ZipStore{FSStore: NewFSStore(rc), rc: rc}, nil
}

// Close closes the underlying archive.
func (s *ZipStore) Close() error {
	return s.rc.Close()
}

// HTTPStore is a Store retrieving the assets from a web server.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a Store fetching the assets relative to baseURL.
// When client is nil http.DefaultClient is used.
func NewHTTPStore(baseURL string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{baseURL: baseURL, client: client}
}

// Open downloads the named asset.
func (s *HTTPStore) Open(name string) (io.ReadCloser, error) {
	return utils.Download(s.client, utils.JoinPath(s.baseURL, name))
}

// NewStore picks a Store for location: a web server when location is a URL,
// a zip archive when it has a .zip extension, a local directory otherwise.
// The returned closer releases the resources held by the store.
func NewStore(location string) (Store, io.Closer, error) {
	if utils.IsValidUrl(location) {
		return NewHTTPStore(location, nil), nopCloser{}, nil
	}
	if strings.EqualFold(filepath.Ext(location), ".zip") {
		zs, err := OpenZipStore(location)
		if err != nil {
			return nil, nil, err
		}
		return zs, zs, nil
	}

	fi, err := os.Stat(location)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to access the symbol directory: %w", err)
	}
	if !fi.IsDir() {
		return nil, nil, fmt.Errorf("%s: not a directory or zip archive", location)
	}
	return DirStore(location), nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// DefaultBasePath is the path of the symbol repository inside a Store.
const DefaultBasePath = "/symbols"

// Loader reads the symbol images relative to a fixed base path.
// It holds no state besides the store and the base path and it is
// safe for concurrent use.
type Loader struct {
	store    Store
	basePath string
}

// NewLoader creates a Loader for the assets found under basePath in store.
func NewLoader(store Store, basePath string) *Loader {
	return &Loader{store: store, basePath: basePath}
}

// BasePath returns the path in the store to the symbol repository.
func (l *Loader) BasePath() string {
	return l.basePath
}

// Load retrieves and decodes the image found at the logical path p. A missing
// or undecodable asset is reported with an error wrapping ErrAssetNotFound.
func (l *Loader) Load(p string) (*image.NRGBA, error) {
	if p == "" {
		return nil, fmt.Errorf("%w: empty asset path", ErrInvalidArgument)
	}
	name := utils.JoinPath(l.basePath, p)

	r, err := l.store.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetNotFound, name, err)
	}
	defer r.Close()

	img, err := decodeImg(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetNotFound, name, err)
	}
	return img, nil
}
