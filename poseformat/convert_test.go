package poseformat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/vio/logging"
)

const euRocPoses = `#timestamp, p_RS_R_x [m], p_RS_R_y [m], p_RS_R_z [m], q_RS_x [], q_RS_y [], q_RS_z [], q_RS_w []
1403636579763555584,4.688,-1.786,0.783,0,0,0,2
1403636579813555456,4.687,-1.786,0.787,0,0,2,0
1403636579863555584,4.686,-1.785,0.791,0,0,0,1
`

func writePoseFile(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "poses.csv")
	test.That(t, os.WriteFile(fn, []byte(content), 0o600), test.ShouldBeNil)
	return fn
}

func readLines(t *testing.T, fn string) []string {
	t.Helper()
	//nolint:gosec
	data, err := os.ReadFile(fn)
	test.That(t, err, test.ShouldBeNil)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestConvertKalibr(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg := Config{InFile: writePoseFile(t, euRocPoses), OutputFormat: FormatKalibr}

	summary, err := Convert(context.Background(), cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.OutFile, test.ShouldEqual, cfg.InFile+".out")
	test.That(t, summary.Rows, test.ShouldEqual, 3)
	test.That(t, summary.TimeIndex, test.ShouldEqual, 0)
	test.That(t, summary.TimeUnit, test.ShouldEqual, TimeUnitNanos)
	test.That(t, summary.PositionIndex, test.ShouldEqual, 1)
	test.That(t, summary.MeanStep, test.ShouldAlmostEqual, 0.05, 1e-6)
	test.That(t, summary.Duration, test.ShouldAlmostEqual, 0.1, 1e-6)
	test.That(t, summary.MinStep, test.ShouldBeLessThanOrEqualTo, summary.MaxStep)

	rendered := summary.String()
	test.That(t, rendered, test.ShouldContainSubstring, "MEAN STEP [S]")
	test.That(t, rendered, test.ShouldContainSubstring, "0.050000")

	expected := []string{
		"1403636579763555584,4.688,-1.786,0.783,0,0,0,1",
		"1403636579813555456,4.687,-1.786,0.787,0,0,1,0",
		"1403636579863555584,4.686,-1.785,0.791,0,0,0,1",
	}
	if diff := cmp.Diff(expected, readLines(t, cfg.InFile+".out")); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestConvertTUMWithIndexColumn(t *testing.T) {
	logger := logging.NewTestLogger(t)
	in := writePoseFile(t, "% index time x y z qw qx qy qz\n"+
		"0 0.25 1 2 3 2 0 0 0\n"+
		"1 12.5 1.5 2 3 0 0 3 4\n")
	out := filepath.Join(t.TempDir(), "poses.tum")
	cfg := Config{
		InFile:          in,
		OutFile:         out,
		InQuatOrder:     QuatOrderWXYZ,
		OutputFormat:    FormatTUMRGBD,
		OutputDelimiter: " ",
	}

	summary, err := Convert(context.Background(), cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.TimeIndex, test.ShouldEqual, 1)
	test.That(t, summary.TimeUnit, test.ShouldEqual, TimeUnitSeconds)

	expected := []string{
		"0.25 1 2 3 0 0 0 1",
		"12.500000000 1.5 2 3 0 0.6 0.8 0",
	}
	if diff := cmp.Diff(expected, readLines(t, out)); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestConvertTimeUnitOverride(t *testing.T) {
	logger := logging.NewTestLogger(t)
	in := writePoseFile(t, "1500.5 0 0 0 0 0 0 1\n")
	out := filepath.Join(t.TempDir(), "poses.kalibr")
	cfg := Config{InFile: in, OutFile: out, InTimeUnit: TimeUnitMillis, OutputFormat: FormatKalibr}

	summary, err := Convert(context.Background(), cfg, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, summary.Rows, test.ShouldEqual, 1)
	test.That(t, summary.MeanStep, test.ShouldEqual, 0.0)
	test.That(t, readLines(t, out), test.ShouldResemble, []string{"1500500000,0,0,0,0,0,0,1"})
}

func TestConvertErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		in := writePoseFile(t, euRocPoses)
		summary, err := Convert(ctx, Config{InFile: in}, logger)
		test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
		test.That(t, summary, test.ShouldBeNil)
		_, err = os.Stat(in + ".out")
		test.That(t, errors.Is(err, os.ErrNotExist), test.ShouldBeTrue)
	})

	t.Run("no data", func(t *testing.T) {
		_, err := Convert(context.Background(), Config{InFile: writePoseFile(t, "# empty\n")}, logger)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := Convert(context.Background(), Config{InFile: filepath.Join(t.TempDir(), "nope.csv")}, logger)
		test.That(t, errors.Is(err, os.ErrNotExist), test.ShouldBeTrue)
	})

	t.Run("short row", func(t *testing.T) {
		in := writePoseFile(t, "1.0 0 0 0 0 0 0 1\n2.0 0 0 0\n")
		_, err := Convert(context.Background(), Config{InFile: in}, logger)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "line 2")
		_, err = os.Stat(in + ".out")
		test.That(t, errors.Is(err, os.ErrNotExist), test.ShouldBeTrue)
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{InFile: "poses.csv"}
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Config{
		InFile:          "poses.csv",
		OutFile:         "poses.csv.out",
		InQuatOrder:     QuatOrderXYZW,
		OutputFormat:    FormatTUMRGBD,
		OutputDelimiter: ",",
	})

	for _, bad := range []Config{
		{},
		{InFile: "a", OutFile: "a"},
		{InFile: "a", InQuatOrder: "zyxw"},
		{InFile: "a", OutputFormat: "ROS"},
		{InFile: "a", InTimeUnit: "h"},
	} {
		test.That(t, bad.Validate(), test.ShouldNotBeNil)
	}
}

func TestReadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "convert.json5")
	test.That(t, os.WriteFile(fn, []byte(`{
	// EuRoC ground truth
	infile: "state_groundtruth_estimate0/data.csv",
	in_quat_order: "wxyz",
	output_format: "KALIBR",
}`), 0o600), test.ShouldBeNil)

	cfg, err := ReadConfig(fn)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg, test.ShouldResemble, Config{
		InFile:       "state_groundtruth_estimate0/data.csv",
		InQuatOrder:  QuatOrderWXYZ,
		OutputFormat: FormatKalibr,
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.json5"))
		test.That(t, errors.Is(err, os.ErrNotExist), test.ShouldBeTrue)
	})

	t.Run("malformed", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json5")
		test.That(t, os.WriteFile(bad, []byte("{infile: "), 0o600), test.ShouldBeNil)
		_, err := ReadConfig(bad)
		test.That(t, err, test.ShouldNotBeNil)
	})
}
