package usecase

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// ErrInvalidCSV marks a structurally broken CSV stream.
var ErrInvalidCSV = errors.New("invalid csv")

const emailHeader = "email"

// Row is one data record of a CSV file keyed by the header record.
type Row struct {
	Line   int
	header []string
	values []string
}

// Get returns the value of the first column named exactly name.
// Columns missing from a short record read as "".
func (r Row) Get(name string) (string, bool) {
	for i, h := range r.header {
		if h == name {
			return r.value(i), true
		}
	}
	return "", false
}

// Map returns the row as header -> value. With duplicate headers the first
// column wins.
func (r Row) Map() map[string]string {
	m := make(map[string]string, len(r.header))
	for i, h := range r.header {
		if _, ok := m[h]; !ok {
			m[h] = r.value(i)
		}
	}
	return m
}

// Email returns the trimmed value of the first column whose header is
// "email" in any letter case and whose value is not blank.
func (r Row) Email() (string, bool) {
	for i, h := range r.header {
		if !strings.EqualFold(h, emailHeader) {
			continue
		}
		if v := strings.TrimSpace(r.value(i)); v != "" {
			return v, true
		}
	}
	return "", false
}

func (r Row) value(i int) string {
	if i < len(r.values) {
		return r.values[i]
	}
	return ""
}

// Rows reads r as CSV with a header record and yields one Row per data
// record, in file order. The sequence is single-use.
//
// A parse failure is yielded once, wrapped with ErrInvalidCSV, and ends the
// sequence. Read errors from r are yielded as they are. An empty stream
// yields nothing.
func Rows(r io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(Row{}, wrapReadErr(err))
			return
		}

		header[0] = strings.TrimPrefix(header[0], "\ufeff")
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}

		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, wrapReadErr(err))
				return
			}

			line, _ := reader.FieldPos(0)
			if !yield(Row{Line: line, header: header, values: record}, nil) {
				return
			}
		}
	}
}

func wrapReadErr(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	return err
}
