package parser

import (
	"strings"

	"github.com/rmoseley/steptools/steperrors"
)

// lexer.go splits raw STEP text into ;-terminated statements, respecting
// quoted strings and /* */ comments, and assigns each statement to the
// header, DATA, or footer region of the file. It performs no grammar
// analysis beyond statement boundaries; that is the entity parser's job.

// statement is one ;-delimited top-level statement.
type statement struct {
	// text is the statement content without the terminating semicolon,
	// with comments removed and surrounding whitespace trimmed.
	text string
	// offset is the byte offset of the statement's first significant byte.
	offset int64
	// end is the byte offset one past the terminating semicolon.
	end int64
}

// sections are the raw split of a STEP file: the opaque header blob (through
// the DATA; statement), the entity statements, and the raw footer blob (from
// ENDSEC; through end of input).
type sections struct {
	header  string
	records []statement
	footer  string
}

// keyword statements with section-level meaning. Part 21 keywords are
// case-sensitive upper-case; comparison here is exact.
const (
	kwData   = "DATA"
	kwEndsec = "ENDSEC"
)

// unsupportedSections are edition-3 Part 21 section keywords the engine
// recognizes but does not handle.
var unsupportedSections = map[string]string{
	"ANCHOR":    "ANCHOR section",
	"REFERENCE": "REFERENCE section",
	"SIGNATURE": "SIGNATURE section",
}

// splitSections scans the input once and produces the three file regions.
// It fails with MalformedRecordError on unterminated statements, strings, or
// comments, and with UnsupportedConstructError on recognized-but-unhandled
// constructs (ANCHOR/REFERENCE/SIGNATURE sections, &SCOPE blocks, or a
// second DATA section).
func splitSections(data []byte) (*sections, error) {
	s := &sections{}
	sawData := false
	sawEndsec := false

	pos := 0
	for {
		stmt, ok, err := nextStatement(data, pos)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pos = int(stmt.end)

		switch {
		case !sawData:
			if name, bad := unsupportedSections[sectionKeyword(stmt.text)]; bad {
				return nil, &steperrors.UnsupportedConstructError{Construct: name, Offset: stmt.offset}
			}
			if stmt.text == kwData {
				sawData = true
				s.header = string(data[:stmt.end])
			}
		case !sawEndsec:
			if stmt.text == kwEndsec {
				sawEndsec = true
				s.footer = string(data[stmt.offset:])
				continue
			}
			if strings.HasPrefix(stmt.text, "&") {
				return nil, &steperrors.UnsupportedConstructError{Construct: "&SCOPE block", Offset: stmt.offset}
			}
			s.records = append(s.records, stmt)
		default:
			// Footer text was captured raw above; keep scanning only to
			// reject a second DATA section.
			if stmt.text == kwData {
				return nil, &steperrors.UnsupportedConstructError{Construct: "multiple DATA sections", Offset: stmt.offset}
			}
		}
	}

	if !sawData {
		return nil, &steperrors.MalformedRecordError{
			Offset:  int64(len(data)),
			Message: "missing DATA section",
		}
	}
	if !sawEndsec {
		return nil, &steperrors.MalformedRecordError{
			Offset:  int64(len(data)),
			Message: "DATA section is not closed by ENDSEC",
		}
	}
	return s, nil
}

// sectionKeyword returns the leading keyword of a statement, so that
// "ANCHOR" matches both a bare ANCHOR; statement and one with parameters.
func sectionKeyword(text string) string {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' {
			continue
		}
		return text[:i]
	}
	return text
}

// nextStatement scans for the next ;-terminated statement starting at pos.
// Comments are stripped, quoted strings are passed through intact (with
// doubled-quote escapes preserved), and whitespace outside strings is
// collapsed away at the statement edges. ok=false means clean end of input.
func nextStatement(data []byte, pos int) (statement, bool, error) {
	n := len(data)

	// Skip leading whitespace and comments.
	for pos < n {
		c := data[pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			pos++
			continue
		}
		if c == '/' && pos+1 < n && data[pos+1] == '*' {
			end, err := skipComment(data, pos)
			if err != nil {
				return statement{}, false, err
			}
			pos = end
			continue
		}
		break
	}
	if pos >= n {
		return statement{}, false, nil
	}

	start := pos
	var buf []byte // filled lazily, only when comments force a rewrite
	flushed := pos // everything before this offset is already in buf

	flush := func(upto int) {
		if buf == nil {
			buf = make([]byte, 0, upto-start+16)
		}
		buf = append(buf, data[flushed:upto]...)
	}

	for pos < n {
		switch data[pos] {
		case ';':
			text := data[start:pos]
			if buf != nil {
				flush(pos)
				text = buf
			}
			return statement{
				text:   strings.TrimSpace(string(text)),
				offset: int64(start),
				end:    int64(pos + 1),
			}, true, nil
		case '\'':
			end, err := skipString(data, pos)
			if err != nil {
				return statement{}, false, err
			}
			pos = end
		case '/':
			if pos+1 < n && data[pos+1] == '*' {
				flush(pos)
				end, err := skipComment(data, pos)
				if err != nil {
					return statement{}, false, err
				}
				pos = end
				flushed = pos
				continue
			}
			pos++
		default:
			pos++
		}
	}

	return statement{}, false, &steperrors.MalformedRecordError{
		Offset:  int64(start),
		Message: "statement is not terminated by ';'",
	}
}

// skipString advances past a quoted string starting at the opening quote,
// honoring the '' escape for an embedded quote. Returns the offset one past
// the closing quote.
func skipString(data []byte, pos int) (int, error) {
	start := pos
	pos++ // opening quote
	for pos < len(data) {
		if data[pos] != '\'' {
			pos++
			continue
		}
		if pos+1 < len(data) && data[pos+1] == '\'' {
			pos += 2 // escaped quote
			continue
		}
		return pos + 1, nil
	}
	return 0, &steperrors.MalformedRecordError{
		Offset:  int64(start),
		Message: "unterminated string",
	}
}

// skipComment advances past a /* */ comment starting at the slash. Returns
// the offset one past the closing */.
func skipComment(data []byte, pos int) (int, error) {
	start := pos
	pos += 2 // "/*"
	for pos+1 < len(data) {
		if data[pos] == '*' && data[pos+1] == '/' {
			return pos + 2, nil
		}
		pos++
	}
	return 0, &steperrors.MalformedRecordError{
		Offset:  int64(start),
		Message: "unterminated comment",
	}
}
