// Package poseformat converts pose files, rows of time, position and orientation, into the
// layouts expected by common calibration and evaluation tools.
package poseformat

import (
	"os"

	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// TimeUnit is the unit of the time column of an input file.
type TimeUnit string

// The supported time units.
const (
	TimeUnitSeconds TimeUnit = "s"
	TimeUnitMillis  TimeUnit = "ms"
	TimeUnitMicros  TimeUnit = "us"
	TimeUnitNanos   TimeUnit = "ns"
)

// decimal digits between the unit and nanoseconds.
var unitExponent = map[TimeUnit]int{
	TimeUnitSeconds: 9,
	TimeUnitMillis:  6,
	TimeUnitMicros:  3,
	TimeUnitNanos:   0,
}

// QuatOrder is the component order of the input quaternion columns.
type QuatOrder string

// The supported quaternion orders.
const (
	QuatOrderXYZW QuatOrder = "xyzw"
	QuatOrderWXYZ QuatOrder = "wxyz"
)

// OutputFormat names an output layout.
type OutputFormat string

const (
	// FormatKalibr rows are t[ns], x, y, z, qx, qy, qz, qw.
	FormatKalibr OutputFormat = "KALIBR"
	// FormatTUMRGBD rows are t[s] x y z qx qy qz qw.
	FormatTUMRGBD OutputFormat = "TUM_RGBD"
)

// Config describes one conversion.
type Config struct {
	InFile  string `json:"infile"`
	OutFile string `json:"outfile,omitempty"`
	// InTimeUnit overrides the detected unit when set.
	InTimeUnit      TimeUnit     `json:"in_time_unit,omitempty"`
	InQuatOrder     QuatOrder    `json:"in_quat_order,omitempty"`
	OutputFormat    OutputFormat `json:"output_format,omitempty"`
	OutputDelimiter string       `json:"output_delimiter,omitempty"`
}

// ReadConfig loads a Config from a JSON5 file, so comments and unquoted keys are allowed. The
// result is not validated.
func ReadConfig(path string) (Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "cannot read conversion config")
	}
	var cfg Config
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "cannot parse conversion config %q", path)
	}
	return cfg, nil
}

// Validate fills in defaults and ensures all parts of the config are valid.
func (cfg *Config) Validate() error {
	if cfg.InFile == "" {
		return errors.New("infile is required")
	}
	if cfg.OutFile == "" {
		cfg.OutFile = cfg.InFile + ".out"
	}
	if cfg.OutFile == cfg.InFile {
		return errors.Errorf("outfile must differ from infile %q", cfg.InFile)
	}
	if cfg.InQuatOrder == "" {
		cfg.InQuatOrder = QuatOrderXYZW
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatTUMRGBD
	}
	if cfg.OutputDelimiter == "" {
		cfg.OutputDelimiter = ","
	}

	switch cfg.InQuatOrder {
	case QuatOrderXYZW, QuatOrderWXYZ:
	default:
		return errors.Errorf("unsupported input quaternion order %q", cfg.InQuatOrder)
	}
	switch cfg.OutputFormat {
	case FormatKalibr, FormatTUMRGBD:
	default:
		return errors.Errorf("unsupported output format %q", cfg.OutputFormat)
	}
	if cfg.InTimeUnit != "" {
		if _, ok := unitExponent[cfg.InTimeUnit]; !ok {
			return errors.Errorf("unsupported input time unit %q", cfg.InTimeUnit)
		}
	}
	return nil
}
