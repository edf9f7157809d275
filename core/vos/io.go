package vos

import (
	"io"
)

// Streams is a VIO over plain readers and writers.
type Streams struct {
	In  io.ReadCloser
	Out io.WriteCloser
	Err io.WriteCloser
}

var _ VIO = (*Streams)(nil)

// NewStreams wraps the given streams. A nil reader is always at end of input
// and a nil writer discards everything written to it.
func NewStreams(stdin io.Reader, stdout, stderr io.Writer) *Streams {
	return &Streams{
		In:  readCloserOrEmpty(stdin),
		Out: writeCloserOrDiscard(stdout),
		Err: writeCloserOrDiscard(stderr),
	}
}

func (s *Streams) Stdin() io.ReadCloser {
	return s.In
}

func (s *Streams) Stdout() io.WriteCloser {
	return s.Out
}

func (s *Streams) Stderr() io.WriteCloser {
	return s.Err
}

func writeCloserOrDiscard(w io.Writer) io.WriteCloser {
	if w == nil {
		w = io.Discard
	}
	if wc, ok := w.(io.WriteCloser); ok {
		return wc
	}
	return nopWriteCloser{w}
}

func readCloserOrEmpty(r io.Reader) io.ReadCloser {
	if r == nil {
		return emptyReader{}
	}
	if rc, ok := r.(io.ReadCloser); ok {
		return rc
	}
	return io.NopCloser(r)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// emptyReader is permanently at end of input.
type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }

func (emptyReader) Close() error { return nil }
