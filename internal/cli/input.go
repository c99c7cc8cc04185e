// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LTLA/powerit/matrix"
)

// Input formats for --format.
const (
	formatAuto = "auto"
	formatCSV  = "csv"
	formatJSON = "json"
)

var errUnknownFormat = errors.New("unknown input format")

// openInput opens path, or returns stdin for "" and "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

// detectFormat resolves formatAuto from the file extension, defaulting to CSV.
func detectFormat(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case formatCSV:
		return formatCSV, nil
	case formatJSON:
		return formatJSON, nil
	case "", formatAuto:
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return formatJSON, nil
		}
		return formatCSV, nil
	}

	return "", fmt.Errorf("%q: %w", format, errUnknownFormat)
}

// readMatrix parses a dense matrix in the given concrete format.
//
// CSV: one row per record, comma separated, '#' starts a comment line.
// JSON: an array of row arrays, e.g. [[2,1],[1,2]].
func readMatrix(r io.Reader, format string) (*matrix.Dense, error) {
	var rows [][]float64
	var err error
	switch format {
	case formatJSON:
		err = json.NewDecoder(r).Decode(&rows)
	case formatCSV:
		rows, err = readCSV(r)
	default:
		err = fmt.Errorf("%q: %w", format, errUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	return matrix.FromRows(rows)
}

func readCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]float64, len(rec))
		for j, field := range rec {
			if row[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				line, _ := cr.FieldPos(j)
				return nil, fmt.Errorf("line %d, field %d: %w", line, j+1, err)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// loadMatrix opens and parses the matrix named by path (stdin for "-").
func loadMatrix(path, format string, stdin io.Reader) (*matrix.Dense, error) {
	format, err := detectFormat(path, format)
	if err != nil {
		return nil, err
	}

	f, err := openInput(path, stdin)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := readMatrix(f, format)
	if err != nil {
		name := path
		if name == "" || name == "-" {
			name = "stdin"
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return m, nil
}
