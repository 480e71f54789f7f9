package phewasnet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
)

// CreateOutput opens path for writing from scratch: local files are truncated
// and gs:// objects are replaced when the writer is closed. Output is never
// appended to, so a rerun cannot duplicate rows.
func CreateOutput(path string, client *storage.Client) (io.WriteCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client was initialized", path)
		}

		bucket, object, err := SplitGSPath(path)
		if err != nil {
			return nil, err
		}

		return client.Bucket(bucket).Object(object).NewWriter(context.Background()), nil
	}

	return os.OpenFile(ExpandHome(path), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

// JoinOutputPath places name inside dir, which may be local or gs://.
func JoinOutputPath(dir, name string) string {
	if IsGoogleStoragePath(dir) {
		if dir[len(dir)-1] != '/' {
			dir += "/"
		}
		return dir + name
	}

	return filepath.Join(ExpandHome(dir), name)
}

// NeedsStorageClient reports whether any of the paths live on Google Storage.
func NeedsStorageClient(paths ...string) bool {
	for _, p := range paths {
		if IsGoogleStoragePath(p) {
			return true
		}
	}

	return false
}
