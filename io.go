package samp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// DefaultMaxLineSize is the longest line NewScanner accepts unless told
// otherwise.
const DefaultMaxLineSize = 64 << 20

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// NewScanner returns a line scanner over r that accepts lines of up to
// maxLineSize bytes.  Trailing "\r\n" or "\n" is stripped from each line.
func NewScanner(r io.Reader, maxLineSize int) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(maxLineSize, 64<<10)), maxLineSize)
	return scanner
}

// Decompress returns a reader producing the decompressed contents of r
// if r starts with a gzip or zstd header, and the contents of r
// unchanged otherwise.  Closing the returned reader does not close r.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "reading input")
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "opening gzip stream")
		}
		return zr, nil
	case bytes.HasPrefix(magic, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "opening zstd stream")
		}
		return zr.IOReadCloser(), nil
	}
	return io.NopCloser(br), nil
}

// OpenInput opens the named file in fs for reading, decompressing it if
// needed.  Closing the returned reader closes the file.
func OpenInput(fs afero.Fs, name string) (io.ReadCloser, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open input file")
	}
	r, err := Decompress(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "%s", name)
	}
	return &fileReader{ReadCloser: r, file: f}, nil
}

type fileReader struct {
	io.ReadCloser
	file afero.File
}

func (r *fileReader) Close() error {
	err := r.ReadCloser.Close()
	if ferr := r.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// WriteResult writes the headers of res followed by its sampled lines,
// one per line.
func WriteResult(w io.Writer, res *Result) error {
	bw := bufio.NewWriter(w)
	for _, group := range [][]string{res.Headers, res.Lines} {
		for _, s := range group {
			if _, err := fmt.Fprintln(bw, s); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Cat emits each line from each named file in order, decompressing
// gzip and zstd files.  If no arguments are specified, Cat copies its
// input to its output.
func Cat(filenames ...string) Filter {
	return FilterFunc(func(arg Arg) error {
		if len(filenames) == 0 {
			for s := range arg.In {
				arg.Out <- s
			}
			return nil
		}
		fs := afero.NewOsFs()
		for _, f := range filenames {
			r, err := OpenInput(fs, f)
			if err == nil {
				err = splitIntoLines(r, arg)
				r.Close()
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteLines prints each input item s followed by a newline to
// writer; and in addition it emits s.  Therefore WriteLines()
// can be used like the "tee" command, which can often be useful
// for debugging.
func WriteLines(writer io.Writer) Filter {
	return FilterFunc(func(arg Arg) error {
		for s := range arg.In {
			if _, err := fmt.Fprintln(writer, s); err != nil {
				return err
			}
			arg.Out <- s
		}
		return nil
	})
}

// ReadLines emits each line found in reader.
func ReadLines(reader io.Reader) Filter {
	return FilterFunc(func(arg Arg) error {
		return splitIntoLines(reader, arg)
	})
}

func splitIntoLines(rd io.Reader, arg Arg) error {
	scanner := NewScanner(rd, DefaultMaxLineSize)
	for scanner.Scan() {
		arg.Out <- scanner.Text()
	}
	return errors.Wrap(scanner.Err(), "reading input")
}
