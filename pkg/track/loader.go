package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

var ErrMissingColumn = errors.New("missing column")

var (
	xColumns = []string{"x_m", "x"}
	yColumns = []string{"y_m", "y"}
)

func LoadFile(path string) ([]model.TrackPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	points, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

// LoadCSV reads track points from a csv with header row.
// Accepted header names are x_m/x and y_m/y, a leading '#' is ignored.
// Other columns (track widths) are skipped.
func LoadCSV(r io.Reader) ([]model.TrackPoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	xIdx := columnIndex(header, xColumns)
	yIdx := columnIndex(header, yColumns)
	if xIdx == -1 || yIdx == -1 {
		return nil, fmt.Errorf("%w: need x and y in %v", ErrMissingColumn, header)
	}

	ret := make([]model.TrackPoint, 0)
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) <= max(xIdx, yIdx) {
			return nil, fmt.Errorf("line %d: expected at least %d fields",
				line, max(xIdx, yIdx)+1)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[xIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: x: %w", line, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[yIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: y: %w", line, err)
		}
		ret = append(ret, model.TrackPoint{X: x, Y: y})
	}
	return ret, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(h), "#")))
}

func columnIndex(header, candidates []string) int {
	for _, c := range candidates {
		for i, h := range header {
			if normalizeHeader(h) == c {
				return i
			}
		}
	}
	return -1
}
