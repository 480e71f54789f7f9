package phewasnet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDelimiter(t *testing.T) {
	for input, expected := range map[string]string{
		`\t`:   "\t",
		`\s`:   " ",
		",":    ",",
		"\t":   "\t",
		"::":   "::",
		"auto": AutoDelimiter,
	} {
		got, err := ParseDelimiter(input)
		if err != nil {
			t.Fatal(err)
		}
		if got != expected {
			t.Errorf("%q: expected %q, got %q", input, expected, got)
		}
	}

	if _, err := ParseDelimiter(""); !errors.Is(err, ErrNoDelimiter) {
		t.Errorf("Expected ErrNoDelimiter, got %v", err)
	}
}

func TestDetermineDelimiter(t *testing.T) {
	csv := strings.Repeat("X,rs1,rs2\n", 5)
	if got := DetermineDelimiter(strings.NewReader(csv)); got != "," {
		t.Errorf("Expected a comma, got %q", got)
	}
}

func TestDetermineDelimiterSpace(t *testing.T) {
	input := "phenotypeID ID pval af\nX rs1 0.01 0.2\nX rs2 0.2 0.3\nY rs3 0.0001 0.05\n"
	if got := DetermineDelimiter(strings.NewReader(input)); got != " " {
		t.Errorf("Expected a space, got %q", got)
	}

	// Ragged space-separated text is not treated as space delimited
	ragged := "one two\nthree\nfour five six\n"
	if got := DetermineDelimiter(strings.NewReader(ragged)); got == " " {
		t.Errorf("Expected no space delimiter for ragged lines, got %q", got)
	}
}

func TestDetermineDelimiterFromPathSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "I10.txt")
	if err := os.WriteFile(path, []byte("ID pval\nrs1 5\nrs2 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := DetermineDelimiterFromPath(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != " " {
		t.Errorf("Expected a space, got %q", got)
	}
}
