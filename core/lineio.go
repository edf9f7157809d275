package core

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/abiosoft/readline"
)

var (
	// ErrInterrupted is returned when an interrupt abandons a read.
	ErrInterrupted = errors.New("read interrupted")
	// ErrLineTooLong is returned for a line over the configured maximum. The
	// whole line is discarded.
	ErrLineTooLong = errors.New("line too long")
)

// LineReader reads one line of input per prompt.
type LineReader interface {
	// ReadLine displays prompt and blocks until a line, without its
	// terminator, is available. A raised intr abandons the read with
	// ErrInterrupted. At end of input it returns io.EOF.
	ReadLine(prompt string, intr *Interrupt) (string, error)
	Close() error
}

type lineResult struct {
	line string
	err  error
}

// PipeReader reads lines from a non-interactive stream.
//
// The stream is shared with foreground children, so it is read one byte at a
// time and only while a ReadLine is in progress; nothing past the end of the
// current line is ever consumed. A goroutine performs the reads so an
// interrupt can abandon a blocked ReadLine. The outstanding read is kept, and
// its byte starts the next line.
type PipeReader struct {
	out     io.Writer
	in      io.Reader
	maxLine int

	start    sync.Once
	stop     sync.Once
	requests chan struct{}
	results  chan byteResult
	// waiting is set while a requested byte hasn't been received.
	waiting bool

	// line holds the partial line; tooLong is set once it passes maxLine
	// and its bytes are being skipped.
	line    []byte
	tooLong bool
	// err ends input once any partial line before it has been returned.
	err error
}

type byteResult struct {
	b   byte
	ok  bool
	err error
}

var _ LineReader = (*PipeReader)(nil)

// NewPipeReader creates a reader that writes prompts to out and rejects
// lines longer than maxLine bytes.
func NewPipeReader(in io.Reader, out io.Writer, maxLine int) *PipeReader {
	return &PipeReader{
		out:      out,
		in:       in,
		maxLine:  maxLine,
		requests: make(chan struct{}, 1),
		results:  make(chan byteResult),
	}
}

func (p *PipeReader) ReadLine(prompt string, intr *Interrupt) (string, error) {
	fmt.Fprint(p.out, prompt)
	if p.err != nil {
		return "", p.err
	}
	p.start.Do(func() {
		go p.pump()
	})

	for {
		if !p.waiting {
			p.waiting = true
			p.requests <- struct{}{}
		}

		select {
		case res := <-p.results:
			if line, done, err := p.consume(res); done {
				return line, err
			}
		case <-intr.Wake():
			if !intr.Pending() {
				continue
			}
			// A byte read before the interrupt belongs to the dropped line.
			select {
			case res := <-p.results:
				p.consume(res)
			default:
			}
			p.resetLine()
			return "", ErrInterrupted
		}
	}
}

// consume adds one read result to the partial line and reports whether the
// line, or input, has ended.
func (p *PipeReader) consume(res byteResult) (line string, done bool, err error) {
	p.waiting = false

	if res.ok {
		switch {
		case res.b == '\n':
			return p.finishLine()
		case p.tooLong:
		case len(p.line) >= p.maxLine:
			p.tooLong = true
			p.line = nil
		default:
			p.line = append(p.line, res.b)
		}
	}

	if res.err == nil {
		return "", false, nil
	}
	p.err = res.err
	if len(p.line) == 0 && !p.tooLong {
		return "", true, res.err
	}
	// Return the unterminated last line; the error follows on the next call.
	return p.finishLine()
}

func (p *PipeReader) finishLine() (string, bool, error) {
	line, tooLong := p.line, p.tooLong
	p.resetLine()
	if tooLong {
		return "", true, ErrLineTooLong
	}
	return string(bytes.TrimSuffix(line, []byte{'\r'})), true, nil
}

func (p *PipeReader) resetLine() {
	p.line = nil
	p.tooLong = false
}

// pump reads a single byte for every request.
func (p *PipeReader) pump() {
	var buf [1]byte
	for range p.requests {
		for {
			n, err := p.in.Read(buf[:])
			if n == 0 && err == nil {
				continue
			}
			p.results <- byteResult{b: buf[0], ok: n == 1, err: err}
			break
		}
	}
}

// Close stops the reading goroutine once its current read returns. The
// underlying stream belongs to the caller.
func (p *PipeReader) Close() error {
	p.stop.Do(func() {
		close(p.requests)
	})
	return nil
}

// ReadlineReader reads lines from a terminal with line editing.
type ReadlineReader struct {
	rl      *readline.Instance
	maxLine int

	// pending holds the result of a Readline call that outlived an
	// interrupted ReadLine.
	pending chan lineResult
}

var _ LineReader = (*ReadlineReader)(nil)

// NewReadlineReader puts a line editor on the terminal behind stdin.
func NewReadlineReader(stdin io.Reader, stdout, stderr io.Writer, maxLine int) (*ReadlineReader, error) {
	cfg := &readline.Config{
		Stdin:        readline.NewCancelableStdin(stdin),
		Stdout:       stdout,
		Stderr:       stderr,
		HistoryLimit: -1,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineReader{rl: rl, maxLine: maxLine}, nil
}

func (r *ReadlineReader) ReadLine(prompt string, intr *Interrupt) (string, error) {
	r.rl.SetPrompt(prompt)
	if r.pending == nil {
		r.pending = make(chan lineResult, 1)
		go func(out chan<- lineResult) {
			line, err := r.rl.Readline()
			out <- lineResult{line: line, err: err}
		}(r.pending)
	} else {
		r.rl.Refresh()
	}

	for {
		select {
		case res := <-r.pending:
			r.pending = nil
			switch {
			case res.err == readline.ErrInterrupt:
				// Ctrl-C in raw mode; readline already ended the line.
				return "", ErrInterrupted
			case res.err != nil:
				return "", res.err
			case len(res.line) > r.maxLine:
				return "", ErrLineTooLong
			default:
				return res.line, nil
			}
		case <-intr.Wake():
			if intr.Pending() {
				return "", ErrInterrupted
			}
		}
	}
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}
