package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-race-tracer/log"
	"github.com/mpapenbr/f1-race-tracer/pkg/cmd/replay"
	"github.com/mpapenbr/f1-race-tracer/pkg/config"
	"github.com/mpapenbr/f1-race-tracer/pkg/playback"
	"github.com/mpapenbr/f1-race-tracer/pkg/racedata"
	"github.com/mpapenbr/f1-race-tracer/pkg/timeline"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "checks the consistency of race data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), os.Stdout)
		},
	}
	replay.AddSourceFlags(cmd)
	cmd.Flags().Float64Var(&config.MaxTime,
		"max-time", 0, "report drivers exceeding this race time")
	return cmd
}

type (
	driverReport struct {
		Driver    string
		Team      string
		Laps      int
		MaxLapNo  int
		TotalTime float64
		Gaps      []int
		ZeroLaps  []int
	}
	report struct {
		Name        string
		TrackPoints int
		TrackLength float64
		Laps        int
		Dropped     int
		TotalLaps   int
		MaxTime     float64
		Drivers     []driverReport
		Warnings    []string
	}
)

func runCheck(ctx context.Context, w io.Writer) error {
	logger := log.GetFromContext(ctx).Named("check")
	loader, cleanup, err := replay.NewLoader(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	data, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	opts := []playback.RaceOption{
		playback.WithSamples(2),
		playback.WithLogger(logger),
	}
	if config.MaxTime > 0 {
		opts = append(opts, playback.WithMaxTime(config.MaxTime))
	}
	r, idx, err := data.Build(opts...)
	if err != nil {
		return err
	}
	rep, err := buildReport(data, r, idx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rep.String())
	return err
}

func buildReport(data *racedata.Data, r *playback.Race, idx *timeline.Index) (*report, error) {
	rep := &report{
		Name:        data.Name,
		TrackPoints: len(data.Track),
		Laps:        idx.NumLaps(),
		Dropped:     data.Dropped,
		TotalLaps:   idx.MaxLapNo(),
		MaxTime:     r.MaxTime(),
		Warnings:    r.Warnings(),
	}
	length, err := trackLength(data)
	if err != nil {
		return nil, err
	}
	rep.TrackLength = length
	for _, tl := range idx.Timelines() {
		rep.Drivers = append(rep.Drivers, driverReport{
			Driver:    tl.Driver(),
			Team:      tl.Team(),
			Laps:      tl.Len(),
			MaxLapNo:  tl.MaxLapNo(),
			TotalTime: tl.TotalTime(),
			Gaps:      tl.Gaps(),
			ZeroLaps:  tl.ZeroDurationLaps(),
		})
	}
	return rep, nil
}

func (r *report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Race:       %s\n", r.Name)
	fmt.Fprintf(&sb, "Track:      %d points, length %.1f\n", r.TrackPoints, r.TrackLength)
	fmt.Fprintf(&sb, "Laps:       %d records, %d dropped rows, %d race laps\n",
		r.Laps, r.Dropped, r.TotalLaps)
	fmt.Fprintf(&sb, "Max time:   %.3f\n", r.MaxTime)
	sb.WriteString("\n")
	for _, d := range r.Drivers {
		fmt.Fprintf(&sb, "%-4s %-20s %3d laps (last %3d) %10.3f", d.Driver, d.Team,
			d.Laps, d.MaxLapNo, d.TotalTime)
		if len(d.Gaps) > 0 {
			fmt.Fprintf(&sb, " gaps %v", d.Gaps)
		}
		if len(d.ZeroLaps) > 0 {
			fmt.Fprintf(&sb, " zero %v", d.ZeroLaps)
		}
		sb.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "  %s\n", w)
		}
	}
	return sb.String()
}
