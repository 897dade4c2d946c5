package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/rmoseley/steptools/parser"
)

// Writer serializes a parsed STEP file back to ISO 10303-21 text
type Writer struct {
	// PreserveHeaderComments keeps /* */ comments in the emitted HEADER
	// section. When false, comment spans are stripped.
	// Default: true
	PreserveHeaderComments bool
}

// New creates a new Writer instance with default settings
func New() *Writer {
	return &Writer{PreserveHeaderComments: true}
}

// Write serializes the file into a byte buffer. The header and footer pass
// through verbatim; DATA-section entities are emitted one per line from
// their parsed parameter trees, so output formatting is deterministic
// regardless of how the input was wrapped.
func (w *Writer) Write(file *parser.StepFile) ([]byte, error) {
	if file == nil || file.Data == nil {
		return nil, fmt.Errorf("writer: nil STEP file")
	}

	size := len(file.Header.Raw) + len(file.Footer) + file.Data.Len()*64
	buf := make([]byte, 0, size)

	header := file.Header.Raw
	if !w.PreserveHeaderComments {
		header = stripComments(header)
	}
	buf = append(buf, header...)
	if !strings.HasSuffix(header, "\n") {
		buf = append(buf, '\n')
	}

	for _, e := range file.Data.Entities {
		buf = e.AppendTo(buf)
		buf = append(buf, ';', '\n')
	}

	buf = append(buf, file.Footer...)
	if !strings.HasSuffix(file.Footer, "\n") {
		buf = append(buf, '\n')
	}
	return buf, nil
}

// WriteTo serializes the file to an io.Writer.
func (w *Writer) WriteTo(dst io.Writer, file *parser.StepFile) (int, error) {
	data, err := w.Write(file)
	if err != nil {
		return 0, err
	}
	return dst.Write(data)
}

// Write serializes a file with default settings.
func Write(file *parser.StepFile) ([]byte, error) {
	return New().Write(file)
}

// stripComments removes /* */ spans outside quoted strings, along with a
// single trailing newline left dangling by a comment that occupied its own
// line.
func stripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for pos < len(s) {
		c := s[pos]
		switch {
		case c == '\'':
			end := pos + 1
			for end < len(s) {
				if s[end] == '\'' {
					if end+1 < len(s) && s[end+1] == '\'' {
						end += 2
						continue
					}
					end++
					break
				}
				end++
			}
			b.WriteString(s[pos:end])
			pos = end
		case c == '/' && pos+1 < len(s) && s[pos+1] == '*':
			end := strings.Index(s[pos+2:], "*/")
			if end < 0 {
				// Unterminated comment cannot come from the parser; keep
				// the text rather than drop it.
				b.WriteString(s[pos:])
				pos = len(s)
				break
			}
			pos += 2 + end + 2
			if pos < len(s) && s[pos] == '\n' && lineEmptySoFar(&b) {
				pos++
			}
		default:
			b.WriteByte(c)
			pos++
		}
	}
	return b.String()
}

// lineEmptySoFar reports whether the builder's current line holds only
// whitespace, meaning a stripped comment occupied the whole line.
func lineEmptySoFar(b *strings.Builder) bool {
	s := b.String()
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}
