// ABOUTME: Input normalization and diagnostics capture for the streaming decoder
// ABOUTME: Filters code points that are illegal in XML and records a response preview

package decode

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// previewLimit caps how much of the raw response is retained for the
// malformed-content diagnostic.
const previewLimit = 2048

// previewRecorder tees the first previewLimit bytes of the raw response so
// decode failures can show what the server actually sent.
type previewRecorder struct {
	r   io.Reader
	buf []byte
}

func newPreviewRecorder(r io.Reader) *previewRecorder {
	return &previewRecorder{r: r, buf: make([]byte, 0, previewLimit)}
}

func (p *previewRecorder) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && len(p.buf) < previewLimit {
		room := previewLimit - len(p.buf)
		if room > n {
			room = n
		}
		p.buf = append(p.buf, b[:room]...)
	}
	return n, err
}

// Preview returns the first three recorded lines, ASCII-sanitized.
// Best effort only; the result is for log output.
func (p *previewRecorder) Preview() string {
	lines := strings.SplitN(string(p.buf), "\n", 4)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			if c >= 0x20 && c < 0x7F {
				sb.WriteRune(c)
			} else if c == '\t' {
				sb.WriteByte(' ')
			} else if c != '\r' {
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

// sanitizingReader drops code points that are illegal in XML text before
// the tokenizer sees them. Upstream servers have been observed emitting
// stray control characters, so this is a required normalization step.
// Bytes that are not valid UTF-8 pass through untouched; a non-UTF-8
// response is converted later by the charset reader.
type sanitizingReader struct {
	br      *bufio.Reader
	pending []byte
	scratch [utf8.UTFMax]byte
}

func newSanitizingReader(r io.Reader) *sanitizingReader {
	return &sanitizingReader{br: bufio.NewReader(r)}
}

func (r *sanitizingReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if len(r.pending) > 0 {
			c := copy(p[n:], r.pending)
			r.pending = r.pending[c:]
			n += c
			continue
		}
		ch, size, err := r.br.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if ch == utf8.RuneError && size == 1 {
			_ = r.br.UnreadRune()
			b, _ := r.br.ReadByte()
			r.scratch[0] = b
			r.pending = r.scratch[:1]
			continue
		}
		if !validXMLChar(ch) {
			continue
		}
		w := utf8.EncodeRune(r.scratch[:], ch)
		r.pending = r.scratch[:w]
	}
	return n, nil
}

// validXMLChar reports whether c is within the character range the XML 1.0
// specification allows.
func validXMLChar(c rune) bool {
	return c == 0x9 || c == 0xA || c == 0xD ||
		(c >= 0x20 && c <= 0xD7FF) ||
		(c >= 0xE000 && c <= 0xFFFD) ||
		(c >= 0x10000 && c <= 0x10FFFF)
}
