package phewasnet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/iterator"
)

var (
	ErrNoInputFiles      = errors.New("no input files matched; check the accuracy of the input file names")
	ErrNoInputSelection  = errors.New("one of the input files, an input directory, or an input glob must be provided")
	ErrConflictingInputs = errors.New("input files, input directory, and input glob are mutually exclusive")
)

// InputSelection describes where the PheWAS files come from. Exactly one of
// the fields may be set.
type InputSelection struct {
	Files []string
	Dir   string
	Glob  string
}

// Paths lists every path the selection refers to, so the caller can decide
// whether a storage client is needed.
func (s InputSelection) Paths() []string {
	out := append([]string{}, s.Files...)
	if s.Dir != "" {
		out = append(out, s.Dir)
	}
	if s.Glob != "" {
		out = append(out, s.Glob)
	}

	return out
}

func (s InputSelection) validate() error {
	set := 0
	if len(s.Files) > 0 {
		set++
	}
	if s.Dir != "" {
		set++
	}
	if s.Glob != "" {
		set++
	}

	switch {
	case set == 0:
		return ErrNoInputSelection
	case set > 1:
		return ErrConflictingInputs
	}

	return nil
}

// ListInputs resolves the selection into a list of files. Directory listings
// skip subdirectories and hidden files (such as .DS_Store). Directory and glob
// results are sorted. An empty result is an error.
func ListInputs(sel InputSelection, client *storage.Client) ([]string, error) {
	if err := sel.validate(); err != nil {
		return nil, err
	}

	var out []string
	var err error

	switch {
	case len(sel.Files) > 0:
		out = sel.Files
	case sel.Dir != "" && IsGoogleStoragePath(sel.Dir):
		out, err = listGoogleStorage(sel.Dir, client)
	case sel.Dir != "":
		out, err = listDirectory(ExpandHome(sel.Dir))
	case IsGoogleStoragePath(sel.Glob):
		out, err = globGoogleStorage(sel.Glob, client)
	default:
		out, err = globLocal(ExpandHome(sel.Glob))
	}
	if err != nil {
		return nil, err
	}

	if len(out) == 0 {
		return nil, ErrNoInputFiles
	}

	return out, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(path.Base(name), ".")
}

func listDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}

	return out, nil
}

func globLocal(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, pfx.Err(err)
		}
		if info.IsDir() {
			continue
		}
		out = append(out, match)
	}
	sort.Strings(out)

	return out, nil
}

// listGoogleStorage lists the objects directly inside a gs:// "directory".
func listGoogleStorage(dir string, client *storage.Client) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: no Google Storage client was initialized", dir)
	}

	bucket, prefix, err := SplitGSPath(strings.TrimSuffix(dir, "/") + "/")
	if err != nil {
		return nil, err
	}

	return listObjects(client, bucket, &storage.Query{Prefix: prefix, Delimiter: "/"}, func(name string) bool {
		return name != prefix && !strings.HasSuffix(name, "/") && !isHidden(name)
	})
}

// globGoogleStorage lists everything under the literal prefix of the pattern
// and keeps the objects that match it.
func globGoogleStorage(pattern string, client *storage.Client) ([]string, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: no Google Storage client was initialized", pattern)
	}

	bucket, objectPattern, err := SplitGSPath(pattern)
	if err != nil {
		return nil, err
	}

	if _, err := path.Match(objectPattern, ""); err != nil {
		return nil, pfx.Err(err)
	}

	prefix := objectPattern
	if i := strings.IndexAny(objectPattern, `*?[\`); i >= 0 {
		prefix = objectPattern[:i]
	}

	return listObjects(client, bucket, &storage.Query{Prefix: prefix}, func(name string) bool {
		matched, _ := path.Match(objectPattern, name)
		return matched && !strings.HasSuffix(name, "/")
	})
}

func listObjects(client *storage.Client, bucket string, query *storage.Query, keep func(name string) bool) ([]string, error) {
	out := make([]string, 0)

	itr := client.Bucket(bucket).Objects(context.Background(), query)
	for {
		attrs, err := itr.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, pfx.Err(err)
		}

		// Synthetic "directory" entries only carry a Prefix
		if attrs.Name == "" || !keep(attrs.Name) {
			continue
		}

		out = append(out, fmt.Sprintf("gs://%s/%s", bucket, attrs.Name))
	}
	sort.Strings(out)

	return out, nil
}
