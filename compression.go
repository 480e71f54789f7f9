package phewasnet

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ErrUnsupportedCompression is returned for formats that are recognized but
// cannot be read, such as LZW (.Z) files.
var ErrUnsupportedCompression = errors.New("unsupported compression format")

type Compression int

const (
	Uncompressed Compression = iota
	Gzip
	Zip
	XZ
	BZip2
	Zlib
	LZW
)

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zip:
		return "zip"
	case XZ:
		return "xz"
	case BZip2:
		return "bzip2"
	case Zlib:
		return "zlib"
	case LZW:
		return "lzw"
	}

	return "uncompressed"
}

type magic struct {
	Compression
	prefix []byte
}

// Checked in order; the longest signature is 6 bytes.
var magics = []magic{
	{Gzip, []byte{0x1f, 0x8b, 0x08}},
	{Zip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{XZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{BZip2, []byte("BZh")},
	{LZW, []byte{0x1f, 0x9d}},
	{Zlib, []byte{0x78, 0x01}},
	{Zlib, []byte{0x78, 0x5e}},
	{Zlib, []byte{0x78, 0x9c}},
	{Zlib, []byte{0x78, 0xda}},
}

const magicLength = 6

// DetectCompression reads up to 6 bytes from r and reports which compression
// format, if any, they announce. Short and empty inputs are uncompressed.
func DetectCompression(r io.Reader) (Compression, error) {
	head := make([]byte, magicLength)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Uncompressed, err
	}
	head = head[:n]

	for _, m := range magics {
		if bytes.HasPrefix(head, m.prefix) {
			return m.Compression, nil
		}
	}

	return Uncompressed, nil
}

// MaybeDecompressReadCloser sniffs the start of f, rewinds it, and wraps it in
// the matching decompressor. Closing the result does not close f.
func MaybeDecompressReadCloser(f io.ReadSeeker) (io.ReadCloser, error) {
	c, err := DetectCompression(f)
	if err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch c {
	case Gzip:
		return gzip.NewReader(f)
	case Zlib:
		return zlib.NewReader(f)
	case Zip:
		return io.NopCloser(zipstream.NewReader(f)), nil
	case BZip2:
		return io.NopCloser(bzip2.NewReader(f)), nil
	case XZ:
		r, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(r), nil
	case LZW:
		return nil, ErrUnsupportedCompression
	}

	return io.NopCloser(f), nil
}
