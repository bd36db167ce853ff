package poseformat

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/vio/utils"
)

const nanosPerSecond = 1000000000

// columns after the time column: position then quaternion.
const poseColumns = 7

// DecideDelimiter returns "," when line holds a comma, otherwise " " meaning any whitespace.
func DecideDelimiter(line string) string {
	if strings.Contains(line, ",") {
		return ","
	}
	return " "
}

// SplitFields splits line on delim, treating " " as any run of whitespace.
func SplitFields(line, delim string) []string {
	if delim == " " {
		return strings.Fields(line)
	}
	fields := strings.Split(line, delim)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// DecideTimeIndexAndUnit inspects up to two sample data lines and returns the time column, its
// unit and the first position column. Column 0 is taken as a frame index rather than time when
// it holds consecutive integers in both samples and the rows are wide enough for an index.
func DecideTimeIndexAndUnit(lines []string, delim string) (int, TimeUnit, int, error) {
	if len(lines) == 0 {
		return 0, "", 0, errors.New("no data lines to inspect")
	}
	first := SplitFields(lines[0], delim)

	timeIndex := 0
	if len(lines) > 1 && len(first) > poseColumns+1 {
		second := SplitFields(lines[1], delim)
		a, errA := strconv.ParseInt(first[0], 10, 64)
		b, errB := strconv.ParseInt(second[0], 10, 64)
		if errA == nil && errB == nil && b == a+1 {
			timeIndex = 1
		}
	}
	if len(first) < timeIndex+1+poseColumns {
		return 0, "", 0, errors.Errorf("expected at least %d columns, got %d in %q",
			timeIndex+1+poseColumns, len(first), lines[0])
	}

	t, err := strconv.ParseFloat(first[timeIndex], 64)
	if err != nil {
		return 0, "", 0, errors.Wrapf(err, "time column %d", timeIndex)
	}
	unit := TimeUnitSeconds
	if utils.IsTimeInNanos(t) {
		unit = TimeUnitNanos
	}
	return timeIndex, unit, timeIndex + 1, nil
}

// ParseTime splits a decimal time token in the given unit into whole seconds and nanoseconds
// without going through floating point. Digits below a nanosecond are truncated.
func ParseTime(token string, unit TimeUnit) (int64, int64, error) {
	shift, ok := unitExponent[unit]
	if !ok {
		return 0, 0, errors.Errorf("unknown time unit %q", unit)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, 0, errors.New("empty time")
	}

	var total int64
	if strings.ContainsAny(token, "eE") {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "bad time %q", token)
		}
		total = int64(math.Round(v * math.Pow10(shift)))
	} else {
		intPart, fracPart, _ := strings.Cut(token, ".")
		if intPart == "" {
			intPart = "0"
		}
		if len(fracPart) < shift {
			fracPart += strings.Repeat("0", shift-len(fracPart))
		}
		if strings.Trim(fracPart[shift:], "0123456789") != "" {
			return 0, 0, errors.Errorf("bad time %q", token)
		}
		var err error
		total, err = strconv.ParseInt(intPart+fracPart[:shift], 10, 64)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "bad time %q", token)
		}
	}
	if total < 0 {
		return 0, 0, errors.Errorf("negative time %q", token)
	}
	return total / nanosPerSecond, total % nanosPerSecond, nil
}

// NormalizeQuaternion parses four quaternion components in the given order and scales them to
// unit norm.
func NormalizeQuaternion(fields []string, order QuatOrder) (quat.Number, error) {
	if len(fields) != 4 {
		return quat.Number{}, errors.Errorf("need 4 quaternion components, got %d", len(fields))
	}
	var v [4]float64
	for i, f := range fields {
		parsed, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return quat.Number{}, errors.Wrapf(err, "quaternion component %d", i)
		}
		v[i] = parsed
	}

	var q quat.Number
	switch order {
	case QuatOrderXYZW:
		q = quat.Number{Real: v[3], Imag: v[0], Jmag: v[1], Kmag: v[2]}
	case QuatOrderWXYZ:
		q = quat.Number{Real: v[0], Imag: v[1], Jmag: v[2], Kmag: v[3]}
	default:
		return quat.Number{}, errors.Errorf("unsupported input quaternion order %q", order)
	}
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{}, errors.New("zero quaternion")
	}
	return quat.Number{Real: q.Real / norm, Imag: q.Imag / norm, Jmag: q.Jmag / norm, Kmag: q.Kmag / norm}, nil
}
