package roster

// reader.go turns an uploaded delimited file into raw rows. Roster files are
// externally authored and arrive in whatever state the exporting system left
// them: Windows BOMs, stray encodings, ragged rows. The reader absorbs all
// of that; only a file that cannot be parsed at all is an error.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"
)

// maxImportBytes guards against runaway uploads when the caller gives no
// tighter limit.
const maxImportBytes = 50 * 1024 * 1024

// ReadRows parses a delimited file into raw rows, header line first.
// The input is BOM-stripped and sanitized to valid UTF-8 before parsing.
// Ragged rows are tolerated; the importer judges them per row.
func ReadRows(r io.Reader, maxSize int64) ([][]string, error) {
	if maxSize <= 0 {
		maxSize = maxImportBytes
	}

	data, err := io.ReadAll(io.LimitReader(skipBOM(r), maxSize))
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	return rows, nil
}

// skipBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF), commonly added by
// Windows spreadsheet tools, without consuming anything else.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		br.Discard(3)
	}
	return br
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the Unicode replacement
// character. Valid input is returned unchanged without copying.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
