package codec

import "strings"

const byteOrderMark = "\uFEFF"

// ParseRows splits CSV text into rows of fields.
//
// Quoted fields may hold commas, newlines and doubled quotes. Carriage
// returns are dropped wherever they appear, so CRLF and LF files parse the
// same. Lines with nothing on them are skipped. ParseRows accepts any input;
// an unterminated quote runs to the end of the text.
func ParseRows(text string) [][]string {
	text = strings.TrimPrefix(text, byteOrderMark)

	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
		quoted   bool // the current row contained a quote
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if len(row) > 1 || row[0] != "" || quoted {
			rows = append(rows, row)
		}
		row = nil
		quoted = false
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			continue
		}
		if inQuotes {
			if c != '"' {
				field.WriteByte(c)
				continue
			}
			if next := nextNonCR(text, i+1); next < len(text) && text[next] == '"' {
				field.WriteByte('"')
				i = next
				continue
			}
			inQuotes = false
			continue
		}
		switch c {
		case '"':
			inQuotes = true
			quoted = true
		case ',':
			endField()
		case '\n':
			endRow()
		default:
			field.WriteByte(c)
		}
	}
	if field.Len() > 0 || len(row) > 0 || quoted {
		endRow()
	}
	return rows
}

func nextNonCR(text string, i int) int {
	for i < len(text) && text[i] == '\r' {
		i++
	}
	return i
}

// Records zips the header row with every following row. Fields beyond the
// header length are ignored; missing trailing fields are absent from the map.
func Records(rows [][]string) []map[string]string {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i >= len(row) {
				break
			}
			rec[name] = row[i]
		}
		records = append(records, rec)
	}
	return records
}
