// Package dataset reads the cleaned per-lap race dataset
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/model"
)

var ErrMissingColumn = errors.New("missing column")

const (
	colDriver   = "driver"
	colLapNo    = "lap_number"
	colLapTime  = "lap_time"
	colPosition = "position"
	colTeam     = "team"
)

// Dataset holds the lap records in file order
type Dataset struct {
	Records []model.LapRecord
	// Entrants in order of first appearance, including drivers whose
	// rows were all dropped
	Entrants []model.Entrant
	Dropped  int // rows without driver or lap time
}

// Drivers returns the driver codes in order of first appearance
func (d *Dataset) Drivers() []string {
	return lo.Map(d.Entrants, func(e model.Entrant, _ int) string {
		return e.Driver
	})
}

// Teams maps driver code to team. The first team seen for a driver wins.
func (d *Dataset) Teams() map[string]string {
	return lo.SliceToMap(d.Entrants, func(e model.Entrant) (string, string) {
		return e.Driver, e.Team
	})
}

func (d *Dataset) addEntrant(code, team string) {
	if lo.ContainsBy(d.Entrants, func(e model.Entrant) bool { return e.Driver == code }) {
		return
	}
	d.Entrants = append(d.Entrants, model.Entrant{Driver: code, Team: team})
}

func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("dataset loaded",
		log.String("file", path),
		log.Int("records", len(ds.Records)),
		log.Int("dropped", ds.Dropped))
	return ds, nil
}

// Load reads the dataset. Columns besides driver, lap_number, lap_time,
// position and team are ignored. The position and team columns are optional.
//
//nolint:funlen,cyclop // by design
func Load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int)
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range []string{colDriver, colLapNo, colLapTime} {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	ds := &Dataset{
		Records:  make([]model.LapRecord, 0),
		Entrants: make([]model.Entrant, 0),
	}
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
		code := DriverCode(field(rec, colDriver))
		lapTime, okTime := parseFloat(field(rec, colLapTime))
		if code != "" {
			ds.addEntrant(code, field(rec, colTeam))
		}
		if code == "" || !okTime {
			ds.Dropped++
			continue
		}
		lapNo, ok := parseFloat(field(rec, colLapNo))
		if !ok || lapNo != math.Trunc(lapNo) {
			return nil, fmt.Errorf("line %d: invalid lap number %q",
				line, field(rec, colLapNo))
		}
		pos, _ := parseFloat(field(rec, colPosition))
		ds.Records = append(ds.Records, model.LapRecord{
			Driver:   code,
			LapNo:    int(lapNo),
			LapTime:  lapTime,
			Position: int(pos),
			Team:     field(rec, colTeam),
		})
	}
	return ds, nil
}

// DriverCode derives the three letter code from a driver name,
// e.g. "Lewis Hamilton" -> "HAM"
func DriverCode(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	last := []rune(parts[len(parts)-1])
	if len(last) > 3 {
		last = last[:3]
	}
	return strings.ToUpper(string(last))
}

// parseFloat accepts values like "12", "12.0" and rejects empty/NaN values
func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
