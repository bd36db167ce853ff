package poseformat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/vio/logging"
	"go.viam.com/vio/utils"
)

// sampleLines is how many data lines are inspected to decide the input layout.
const sampleLines = 2

// Summary describes a finished conversion.
type Summary struct {
	// OutFile is the file written, after defaults are applied.
	OutFile       string
	Rows          int
	TimeIndex     int
	TimeUnit      TimeUnit
	PositionIndex int
	// Duration is the span between the first and last row in seconds.
	Duration float64
	// Step statistics over consecutive row times in seconds. Zero with fewer than two rows.
	MeanStep   float64
	StdDevStep float64
	MedianStep float64
	MinStep    float64
	MaxStep    float64
}

// String renders the summary as a table.
func (s Summary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Rows", "Time column", "Unit", "Duration [s]", "Mean step [s]", "Std step [s]", "Min step [s]", "Max step [s]"})
	t.AppendRow(table.Row{
		s.Rows,
		s.TimeIndex,
		string(s.TimeUnit),
		fmt.Sprintf("%.6f", s.Duration),
		fmt.Sprintf("%.6f", s.MeanStep),
		fmt.Sprintf("%.6f", s.StdDevStep),
		fmt.Sprintf("%.6f", s.MinStep),
		fmt.Sprintf("%.6f", s.MaxStep),
	})
	return t.Render()
}

// Convert rewrites cfg.InFile into cfg.OutFile in cfg.OutputFormat. Header lines are dropped. On
// failure after the output was created it is removed.
func Convert(ctx context.Context, cfg Config, logger logging.Logger) (summary *Summary, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	//nolint:gosec
	in, err := os.Open(cfg.InFile)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open input pose file")
	}
	defer goutils.UncheckedErrorFunc(in.Close)

	samples, err := readSamples(in)
	if err != nil {
		return nil, err
	}
	delim := DecideDelimiter(samples[len(samples)-1])
	timeIndex, timeUnit, posIndex, err := DecideTimeIndexAndUnit(samples, delim)
	if err != nil {
		return nil, err
	}
	if cfg.InTimeUnit != "" {
		timeUnit = cfg.InTimeUnit
	}
	logger.Infow("determined input layout",
		"time_index", timeIndex, "time_unit", timeUnit, "position_index", posIndex, "delimiter", delim)

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "cannot rewind input pose file")
	}

	//nolint:gosec
	out, err := os.Create(cfg.OutFile)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create output pose file")
	}
	defer func() {
		err = multierr.Combine(err, out.Close())
		if err != nil {
			summary = nil
			err = multierr.Combine(err, os.Remove(cfg.OutFile))
		}
	}()
	writer := bufio.NewWriter(out)

	summary = &Summary{OutFile: cfg.OutFile, TimeIndex: timeIndex, TimeUnit: timeUnit, PositionIndex: posIndex}
	var times []float64
	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		if utils.IsHeaderLine(line) {
			continue
		}
		fields := SplitFields(line, delim)
		if len(fields) < posIndex+poseColumns {
			return nil, errors.Errorf("line %d: expected at least %d columns, got %d", lineNum, posIndex+poseColumns, len(fields))
		}
		secs, nanos, err := ParseTime(fields[timeIndex], timeUnit)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		q, err := NormalizeQuaternion(fields[posIndex+3:posIndex+poseColumns], cfg.InQuatOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		if _, err := writer.WriteString(formatRow(cfg, secs, nanos, fields[posIndex:posIndex+3], q)); err != nil {
			return nil, errors.Wrap(err, "cannot write output pose file")
		}
		times = append(times, float64(secs)+float64(nanos)*1e-9)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading input pose file")
	}
	if err := writer.Flush(); err != nil {
		return nil, errors.Wrap(err, "cannot write output pose file")
	}

	summary.Rows = len(times)
	if err := summary.fillStepStats(times); err != nil {
		return nil, err
	}
	logger.Debugw("converted pose file", "rows", summary.Rows, "mean_step", summary.MeanStep, "outfile", cfg.OutFile)
	return summary, nil
}

// readSamples returns the first data lines of r.
func readSamples(r io.Reader) ([]string, error) {
	var samples []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() && len(samples) < sampleLines {
		if line := scanner.Text(); !utils.IsHeaderLine(line) {
			samples = append(samples, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error reading input pose file")
	}
	if len(samples) == 0 {
		return nil, errors.New("input pose file has no data lines")
	}
	return samples, nil
}

func formatRow(cfg Config, secs, nanos int64, position []string, q quat.Number) string {
	var sb strings.Builder
	switch cfg.OutputFormat {
	case FormatKalibr:
		if secs > 0 {
			fmt.Fprintf(&sb, "%d%09d", secs, nanos)
		} else {
			fmt.Fprintf(&sb, "%d", nanos)
		}
	case FormatTUMRGBD:
		if secs > 0 {
			fmt.Fprintf(&sb, "%d.%09d", secs, nanos)
		} else {
			sb.WriteString(strconv.FormatFloat(float64(nanos)/nanosPerSecond, 'g', -1, 64))
		}
	}
	for _, p := range position {
		sb.WriteString(cfg.OutputDelimiter)
		sb.WriteString(p)
	}
	for _, c := range []float64{q.Imag, q.Jmag, q.Kmag, q.Real} {
		sb.WriteString(cfg.OutputDelimiter)
		sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (s *Summary) fillStepStats(times []float64) error {
	if len(times) < 2 {
		return nil
	}
	s.Duration = times[len(times)-1] - times[0]
	steps := make(stats.Float64Data, 0, len(times)-1)
	for i := 1; i < len(times); i++ {
		steps = append(steps, times[i]-times[i-1])
	}

	var err error
	if s.MeanStep, err = steps.Mean(); err != nil {
		return err
	}
	if s.StdDevStep, err = steps.StandardDeviation(); err != nil {
		return err
	}
	if s.MedianStep, err = steps.Median(); err != nil {
		return err
	}
	if s.MinStep, err = steps.Min(); err != nil {
		return err
	}
	if s.MaxStep, err = steps.Max(); err != nil {
		return err
	}
	return nil
}
