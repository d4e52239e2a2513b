// Copyright (c) 2023 Colin McRae

// Package basisio reads integer bases from CSV files and array literals, and
// writes them back out as array literals.
//
// An array literal is a JSON array of rows, each row a JSON array of decimal
// integers that may be quoted, e.g. [["11","3","4"],["2","11","5"]]. The
// literal [] is the empty basis.
package basisio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/kobzistiy/lll/bigmatrix"
)

// InputFormatError reports a basis that could not be read. Line and Row are
// 1-based and 0 when unknown.
type InputFormatError struct {
	Source string
	Line   int
	Row    int
	Msg    string
	Err    error
}

func (e *InputFormatError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&sb, ":%d", e.Line)
	}
	if e.Row > 0 {
		fmt.Fprintf(&sb, ": row %d", e.Row)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Msg)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *InputFormatError) Unwrap() error {
	return e.Err
}

// LoadFromString parses an array literal
func LoadFromString(data string) (*bigmatrix.BigMatrix, error) {
	const source = "data"
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, &InputFormatError{Source: source, Msg: "no data"}
	}
	decoder := json.NewDecoder(strings.NewReader(trimmed))
	var rawRows []json.RawMessage
	err := decoder.Decode(&rawRows)
	if err != nil {
		return nil, &InputFormatError{Source: source, Msg: "expected an array of rows", Err: err}
	}
	if rawRows == nil {
		return nil, &InputFormatError{Source: source, Msg: "expected an array of rows"}
	}
	_, err = decoder.Token()
	if err != io.EOF {
		return nil, &InputFormatError{Source: source, Msg: "unexpected text after the array of rows"}
	}
	rows := make([][]*big.Int, len(rawRows))
	for i, rawRow := range rawRows {
		var rawEntries []json.RawMessage
		err = json.Unmarshal(rawRow, &rawEntries)
		if err != nil {
			return nil, &InputFormatError{Source: source, Row: i + 1, Msg: "expected an array of integers", Err: err}
		}
		rows[i] = make([]*big.Int, len(rawEntries))
		for j, rawEntry := range rawEntries {
			rows[i][j], err = parseEntry(rawEntry)
			if err != nil {
				return nil, &InputFormatError{
					Source: source, Row: i + 1, Msg: fmt.Sprintf("entry %d", j+1), Err: err,
				}
			}
		}
	}
	return newBasis(source, rows)
}

// parseEntry parses a quoted or unquoted decimal integer
func parseEntry(rawEntry json.RawMessage) (*big.Int, error) {
	token := string(bytes.TrimSpace(rawEntry))
	if strings.HasPrefix(token, `"`) {
		var quoted string
		err := json.Unmarshal(rawEntry, &quoted)
		if err != nil {
			return nil, err
		}
		token = quoted
	}
	return parseInteger(token)
}

func parseInteger(token string) (*big.Int, error) {
	token = strings.TrimSpace(token)
	retVal, ok := big.NewInt(0).SetString(token, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not a decimal integer", token)
	}
	return retVal, nil
}

// ReadCSV reads one basis row per line of comma-separated decimal integers.
// Whitespace around an integer is ignored, as are blank lines.
func ReadCSV(source string, r io.Reader) (*bigmatrix.BigMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	var rows [][]*big.Int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.StartLine
			}
			return nil, &InputFormatError{Source: source, Line: line, Msg: "malformed CSV", Err: err}
		}
		line, _ := reader.FieldPos(0)
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		row := make([]*big.Int, len(record))
		for j, field := range record {
			row[j], err = parseInteger(field)
			if err != nil {
				return nil, &InputFormatError{
					Source: source, Line: line, Msg: fmt.Sprintf("field %d", j+1), Err: err,
				}
			}
		}
		rows = append(rows, row)
	}
	return newBasis(source, rows)
}

// LoadFromCSV reads a CSV file with ReadCSV
func LoadFromCSV(path string) (*bigmatrix.BigMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputFormatError{Source: path, Msg: "could not open file", Err: err}
	}
	defer f.Close()
	return ReadCSV(path, f)
}

// newBasis checks that rows form a basis. Ragged rows yield an
// InputFormatError wrapping a *bigmatrix.DimensionMismatchError.
func newBasis(source string, rows [][]*big.Int) (*bigmatrix.BigMatrix, error) {
	retVal, err := bigmatrix.NewFromRows(rows)
	if err != nil {
		var dimErr *bigmatrix.DimensionMismatchError
		if errors.As(err, &dimErr) {
			return nil, &InputFormatError{Source: source, Row: dimErr.Row + 1, Msg: "ragged basis", Err: err}
		}
		return nil, &InputFormatError{Source: source, Msg: "invalid basis", Err: err}
	}
	return retVal, nil
}

// Format returns the array literal for b, with every integer quoted
func Format(b *bigmatrix.BigMatrix) string {
	rows := b.Rows()
	quoted := make([][]string, len(rows))
	for i, row := range rows {
		quoted[i] = make([]string, len(row))
		for j, entry := range row {
			quoted[i][j] = entry.String()
		}
	}
	retVal, err := json.Marshal(quoted)
	if err != nil {
		// [][]string always marshals
		panic(err)
	}
	return string(retVal)
}
