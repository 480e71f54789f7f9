package phewasnet

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

const phewasContent = "phenotypeID ID pval\nX rs1 0.01\nX rs2 0.2\n"

func TestOpenInputDecompresses(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	gw.Write([]byte(phewasContent))
	gw.Close()

	var zl bytes.Buffer
	zw := zlib.NewWriter(&zl)
	zw.Write([]byte(phewasContent))
	zw.Close()

	for name, content := range map[string][]byte{
		"plain.txt":   []byte(phewasContent),
		"gzipped.gz":  gz.Bytes(),
		"zlibbed.txt": zl.Bytes(),
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatal(err)
		}

		r, err := OpenInput(path, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := r.Close(); err != nil {
			t.Errorf("%s: %v", name, err)
		}

		if string(got) != phewasContent {
			t.Errorf("%s: expected %q, got %q", name, phewasContent, got)
		}
	}
}

func TestDetectCompression(t *testing.T) {
	for _, v := range []struct {
		Input    []byte
		Expected Compression
	}{
		{[]byte{0x1f, 0x8b, 0x08, 0, 0, 0}, Gzip},
		{[]byte{0x50, 0x4b, 0x03, 0x04, 0, 0}, Zip},
		{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, XZ},
		{[]byte("BZh91AY"), BZip2},
		{[]byte{0x78, 0x9c, 0x01}, Zlib},
		{[]byte{0x1f, 0x9d, 0x90}, LZW},
		{[]byte("ID\n"), Uncompressed},
		{[]byte{0x1f}, Uncompressed},
		{[]byte{}, Uncompressed},
	} {
		c, err := DetectCompression(bytes.NewReader(v.Input))
		if err != nil {
			t.Fatal(err)
		}
		if c != v.Expected {
			t.Errorf("%q: expected %v, got %v", v.Input, v.Expected, c)
		}
	}
}

func TestOpenInputUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.Z")
	if err := os.WriteFile(path, []byte{0x1f, 0x9d, 0x90, 0x70}, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenInput(path, nil); !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("Expected ErrUnsupportedCompression, got %v", err)
	}
}

func TestOpenInputMissingFile(t *testing.T) {
	_, err := OpenInput(filepath.Join(t.TempDir(), "nope.txt"), nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}
}
