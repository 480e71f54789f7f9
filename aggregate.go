package phewasnet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/carbocation/phewasnet/network"
)

// ErrFilteredNameCollision is returned when two inputs would write their
// filtered copies to the same file.
var ErrFilteredNameCollision = errors.New("inputs share a filtered output name")

// FilteredName is the file name used for the filtered copy of an input.
func FilteredName(inputPath string) string {
	return "filtered_" + filepath.Base(inputPath)
}

// AggregateFiles feeds every path into agg in order. With AutoDelimiter, each
// file's delimiter is sniffed before it is read. When keepFiltered is set, the
// filtered copy of each input is buffered and returned keyed by input path, so
// that nothing is written out unless every input was read successfully.
func AggregateFiles(agg *network.Aggregator, paths []string, delimiter string, client *storage.Client, keepFiltered bool) (map[string]*bytes.Buffer, error) {
	var filtered map[string]*bytes.Buffer
	if keepFiltered {
		if err := checkFilteredNames(paths); err != nil {
			return nil, err
		}
		filtered = make(map[string]*bytes.Buffer, len(paths))
	}

	for i, path := range paths {
		if err := aggregateFile(agg, path, delimiter, client, filtered); err != nil {
			return nil, err
		}

		if (i+1)%100 == 0 {
			log.Printf("Read %d of %d files\n", i+1, len(paths))
		}
	}

	return filtered, nil
}

func checkFilteredNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := FilteredName(path)
		if prior, exists := seen[name]; exists {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrFilteredNameCollision, prior, path, name)
		}
		seen[name] = path
	}

	return nil
}

func aggregateFile(agg *network.Aggregator, path, delimiter string, client *storage.Client, filtered map[string]*bytes.Buffer) error {
	if delimiter == AutoDelimiter {
		var err error
		delimiter, err = DetermineDelimiterFromPath(path, client)
		if err != nil {
			return err
		}
	}

	r, err := OpenInput(path, client)
	if err != nil {
		return err
	}
	defer r.Close()

	src := network.Source{
		Name:      path,
		Reader:    r,
		Delimiter: delimiter,
	}

	if filtered != nil {
		buf := &bytes.Buffer{}
		filtered[path] = buf
		src.Filtered = buf
	}

	return agg.Add(src)
}

// WriteFiltered writes each buffered filtered copy into dir.
func WriteFiltered(dir string, filtered map[string]*bytes.Buffer, client *storage.Client) error {
	for path, buf := range filtered {
		if err := WriteOutput(JoinOutputPath(dir, FilteredName(path)), client, func(w io.Writer) error {
			_, err := buf.WriteTo(w)
			return err
		}); err != nil {
			return err
		}
	}

	return nil
}

// WriteOutput creates path, hands it to write, and closes it. For gs:// paths
// the object only exists once Close succeeds, so its error is not ignored.
func WriteOutput(path string, client *storage.Client, write func(w io.Writer) error) error {
	w, err := CreateOutput(path, client)
	if err != nil {
		return err
	}

	if err := write(w); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}
