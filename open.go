package lightcurve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// StdStream is the path that names stdin (for inputs) or stdout (for outputs).
const StdStream = "-"

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}

// SplitGSPath splits gs://bucket/path/to/object into its bucket and object
// name.
func SplitGSPath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// OpenInput opens path for reading. Paths starting with gs:// are read from
// Google Storage through client (which must then be non-nil), http(s) URLs are
// fetched, "-" is stdin, and anything else is a local file. Compressed inputs
// are transparently decompressed.
func OpenInput(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	raw, err := openRaw(ctx, path, client)
	if err != nil {
		return nil, err
	}

	rc, _, err := MaybeDecompressReadCloser(raw)
	if err != nil {
		raw.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rc, nil
}

func openRaw(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	switch {
	case path == StdStream:
		return io.NopCloser(os.Stdin), nil

	case strings.HasPrefix(path, "gs://"):
		if client == nil {
			return nil, fmt.Errorf("%s: a google storage client is required for gs:// paths", path)
		}
		bucketName, pathName, err := SplitGSPath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}
		return rdr, nil

	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, pfx.Err(err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, pfx.Err(fmt.Errorf("%s: unexpected HTTP status %s", path, resp.Status))
		}
		return resp.Body, nil
	}

	local, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(local)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// CreateOutput opens path for writing. gs:// paths are written to Google
// Storage through client; the object is only committed once the returned
// writer is closed without error. "-" writes to stdout.
func CreateOutput(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	switch {
	case path == StdStream:
		return nopWriteCloser{os.Stdout}, nil

	case strings.HasPrefix(path, "gs://"):
		if client == nil {
			return nil, fmt.Errorf("%s: a google storage client is required for gs:// paths", path)
		}
		bucketName, pathName, err := SplitGSPath(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		w := client.Bucket(bucketName).Object(pathName).NewWriter(ctx)
		w.ContentType = "text/csv"
		return w, nil
	}

	local, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(local)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

// NeedsStorageClient reports whether any of the paths lives in Google Storage.
func NeedsStorageClient(paths ...string) bool {
	for _, p := range paths {
		if strings.HasPrefix(p, "gs://") {
			return true
		}
	}
	return false
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
