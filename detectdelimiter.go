package phewasnet

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/csimplestring/go-csv/detector"
)

// AutoDelimiter asks for the delimiter to be detected separately for each
// input file.
const AutoDelimiter = "auto"

var ErrNoDelimiter = errors.New("no file delimiter provided")

// ParseDelimiter translates the delimiter given on the command line. The
// two-character sequences \t and \s stand for a tab and a space, since those
// are awkward to pass through a shell. Anything else is used literally.
func ParseDelimiter(value string) (string, error) {
	switch value {
	case "":
		return "", ErrNoDelimiter
	case `\t`:
		return "\t", nil
	case `\s`:
		return " ", nil
	}

	return value, nil
}

// sniffLength bounds how much of a file is examined for its delimiter.
const sniffLength = 64 * 1024

// DetermineDelimiter returns the single most likely delimiter of the values in
// the reader, assuming a CSV-like file. The detector never proposes a space, so
// a sample whose lines all split into the same number (>1) of space-separated
// fields is taken to be space delimited. Falls back to a tab.
func DetermineDelimiter(r io.Reader) string {
	sample, err := io.ReadAll(io.LimitReader(r, sniffLength))
	if err != nil {
		return "\t"
	}

	d := detector.New()
	delimiters := d.DetectDelimiter(bytes.NewReader(sample), '"')

	if len(delimiters) > 0 {
		return delimiters[0]
	}

	if spaceDelimited(sample, len(sample) == sniffLength) {
		return " "
	}

	return "\t"
}

func spaceDelimited(sample []byte, truncated bool) bool {
	lines := strings.Split(string(sample), "\n")
	if truncated && len(lines) > 1 {
		// The final line may be cut short
		lines = lines[:len(lines)-1]
	}

	fields := 0
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		n := len(strings.Split(line, " "))
		if n < 2 || (fields > 0 && n != fields) {
			return false
		}
		fields = n
	}

	return fields > 1
}

// DetermineDelimiterFromPath opens the (possibly compressed, possibly gs://)
// file just to sniff its delimiter. The decompressed stream cannot seek, so the
// caller must reopen the file to actually read it.
func DetermineDelimiterFromPath(path string, client *storage.Client) (string, error) {
	r, err := OpenInput(path, client)
	if err != nil {
		return "", err
	}
	defer r.Close()

	return DetermineDelimiter(r), nil
}
