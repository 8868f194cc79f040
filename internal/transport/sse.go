package transport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/supermemoryai/install-mcp/internal/errors"
)

const (
	readChunkSize = 4 << 10
	// maxFrameSize bounds how much unterminated input is buffered.
	maxFrameSize = 1 << 20
)

// ErrFrameTooLarge is returned when no frame boundary appears within maxFrameSize bytes.
var ErrFrameTooLarge = errors.New("event stream frame too large")

var boundary = []byte("\n\n")

// Frame is one parsed Server-Sent Events message.
type Frame struct {
	Event string
	Data  string
	ID    string
}

// ParseFrame parses the lines of a single frame, without its terminating
// blank line. Comment lines and fields other than event, data and id are
// ignored. Multiple data lines are joined with "\n"; the last event and
// id win.
func ParseFrame(block string) Frame {
	var (
		f    Frame
		data []string
	)
	for _, line := range strings.Split(block, "\n") {
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		name, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch strings.TrimSpace(name) {
		case "event":
			f.Event = value
		case "data":
			data = append(data, value)
		case "id":
			f.ID = value
		}
	}
	f.Data = strings.Join(data, "\n")
	return f
}

// FrameReader splits an event stream into frames as bytes arrive.
// Chunks may end anywhere, including inside a CRLF pair or a multi-byte
// character.
type FrameReader struct {
	r     io.Reader
	buf   []byte // input with CRLF folded to LF
	chunk []byte
	err   error

	// scanned is how far buf is known to hold no boundary.
	scanned int
	// pendingCR holds a trailing '\r' until the next byte shows whether it
	// starts a CRLF pair.
	pendingCR bool
}

// NewFrameReader returns a FrameReader consuming r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r, chunk: make([]byte, readChunkSize)}
}

// Next returns the next complete frame. It returns as soon as a blank line
// terminates a frame and never reads past that chunk. A stream that ends
// before a boundary yields the read error, io.EOF included.
func (fr *FrameReader) Next() (Frame, error) {
	for {
		if f, ok := fr.cut(); ok {
			return f, nil
		}
		if fr.err != nil {
			return Frame{}, fr.err
		}
		if len(fr.buf) > maxFrameSize {
			fr.err = ErrFrameTooLarge
			return Frame{}, fr.err
		}

		n, err := fr.r.Read(fr.chunk)
		fr.append(fr.chunk[:n])
		fr.err = err
	}
}

// append adds p to buf, folding CRLF pairs that may straddle reads.
func (fr *FrameReader) append(p []byte) {
	for _, b := range p {
		if fr.pendingCR {
			fr.pendingCR = false
			if b != '\n' {
				fr.buf = append(fr.buf, '\r')
			}
		}
		if b == '\r' {
			fr.pendingCR = true
			continue
		}
		fr.buf = append(fr.buf, b)
	}
}

func (fr *FrameReader) cut() (Frame, bool) {
	i := bytes.Index(fr.buf[fr.scanned:], boundary)
	if i < 0 {
		// A boundary may still complete across the last byte.
		fr.scanned = max(0, len(fr.buf)-len(boundary)+1)
		return Frame{}, false
	}
	i += fr.scanned
	block := strings.ToValidUTF8(string(fr.buf[:i]), "\uFFFD")
	fr.buf = append(fr.buf[:0], fr.buf[i+len(boundary):]...)
	fr.scanned = 0
	return ParseFrame(block), true
}

// ReadFirstFrame reads the first frame from body within timeout. It
// reports false when the stream ends, fails or times out first. On timeout
// or ctx cancellation body is closed to unblock the read. The caller still
// owns body and must release it.
func ReadFirstFrame(ctx context.Context, body io.ReadCloser, timeout time.Duration) (Frame, bool) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, func() {
		_ = body.Close()
	})
	defer stop()

	f, err := NewFrameReader(body).Next()
	if err != nil {
		return Frame{}, false
	}
	return f, true
}
