package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thongular/booking/internal/domain/availability"
)

// DayFile describes one day to compute slots for.
type DayFile struct {
	Date     string                      `yaml:"date"`
	Timezone string                      `yaml:"timezone"`
	From     string                      `yaml:"from"`
	Till     string                      `yaml:"till"`
	Duration int                         `yaml:"duration"`
	Busy     []availability.BusyInterval `yaml:"busy"`
}

// ComputedSlot is one line of JSON output.
type ComputedSlot struct {
	Start time.Time `json:"start"`
	Time  string    `json:"time"`
}

// ComputeOptions holds flags of the compute command.
type ComputeOptions struct {
	File string
	Now  string
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComputeOptions{}

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Print the free slots of a day file",
		Long: `Reads a YAML day file (date, timezone, from, till, duration, busy) and prints
the free slot start times as HH:mm in the file's time zone.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(rootOpts, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to the YAML day file")
	cmd.Flags().StringVar(&opts.Now, "now", "", "reference time in RFC3339 (defaults to the current time)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runCompute(rootOpts *RootOptions, opts *ComputeOptions, out io.Writer) error {
	data, err := os.ReadFile(opts.File)
	if err != nil {
		return fmt.Errorf("read day file: %w", err)
	}

	var day DayFile
	if err := yaml.Unmarshal(data, &day); err != nil {
		return fmt.Errorf("parse day file: %w", err)
	}

	now := time.Now()
	if opts.Now != "" {
		if now, err = time.Parse(time.RFC3339, opts.Now); err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
	}

	loc, free, err := computeDay(day, now)
	if err != nil {
		return err
	}

	if rootOpts.Format == "json" {
		slots := make([]ComputedSlot, 0, len(free))
		for _, s := range free {
			slots = append(slots, ComputedSlot{Start: s.In(loc), Time: s.In(loc).Format("15:04")})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(slots)
	}

	for _, s := range free {
		if _, err := fmt.Fprintln(out, s.In(loc).Format("15:04")); err != nil {
			return err
		}
	}
	return nil
}

func computeDay(day DayFile, now time.Time) (*time.Location, []time.Time, error) {
	loc := time.UTC
	if day.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(day.Timezone); err != nil {
			return nil, nil, fmt.Errorf("invalid timezone: %w", err)
		}
	}

	date, err := time.ParseInLocation("2006-01-02", day.Date, loc)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date %q: %w", day.Date, err)
	}
	from, err := availability.ParseTimeOfDay(day.From)
	if err != nil {
		return nil, nil, err
	}
	till, err := availability.ParseTimeOfDay(day.Till)
	if err != nil {
		return nil, nil, err
	}

	for _, b := range day.Busy {
		if b.End.Before(b.Start) {
			return nil, nil, fmt.Errorf("%w: %s", availability.ErrInvalidBusyInterval, b.Start.Format(time.RFC3339))
		}
	}

	window := availability.WorkingWindow{Date: date, From: from, Till: till, Location: loc}
	free, err := availability.ComputeFreeSlots(window, day.Duration, day.Busy, now)
	if err != nil {
		return nil, nil, err
	}
	return loc, free, nil
}
