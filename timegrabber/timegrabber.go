// Package timegrabber reads per-frame timestamps from the text files that accompany image
// sequences.
package timegrabber

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/vio/logging"
	vutils "go.viam.com/vio/utils"
)

var (
	// ErrBackwardRead is returned when asked for a line before the last one read.
	ErrBackwardRead = errors.New("reading previous timestamps is unsupported")
	// ErrLineNotFound is returned when the file ends before the requested line.
	ErrLineNotFound = errors.New("timestamp line not found")
	// ErrNotOpen is returned when reading before a successful Open.
	ErrNotOpen = errors.New("timestamp file is not open")
)

// DatasetVariant selects how ExtractTimestamp interprets a line.
type DatasetVariant int

const (
	// DatasetIndexed files hold "frame_index milliseconds" per line.
	DatasetIndexed DatasetVariant = iota
	// DatasetMalaga files list left and right image names on alternating lines, with the
	// timestamp embedded in the name, e.g. img_CAMERA1_1261228749.918590_right.jpg.
	DatasetMalaga
)

// offset and length of the timestamp inside a Malaga image name.
const (
	malagaStampOffset = 12
	malagaStampLength = 17
)

// String returns the variant's name.
func (v DatasetVariant) String() string {
	switch v {
	case DatasetIndexed:
		return "indexed"
	case DatasetMalaga:
		return "malaga"
	default:
		return "unknown"
	}
}

// A TimeGrabber reads timestamps line by line, moving only forward through the file. It is not
// safe for concurrent use.
type TimeGrabber struct {
	logger logging.Logger

	path    string
	file    *os.File
	scanner *bufio.Scanner

	lastLineIndex     int
	lastLineTime      float64
	timeFormatSet     bool
	timeInNanos       bool
	lastLeftImageName string
}

// New returns a TimeGrabber with no file open.
func New(logger logging.Logger) *TimeGrabber {
	return &TimeGrabber{logger: logger, lastLineIndex: -1, lastLineTime: -1}
}

// Open opens the timestamp file at path and skips its header lines. Any previously open file is
// closed first. A missing file is not unusual, datasets often come without one, so it is logged
// at info level and reported as an error wrapping os.ErrNotExist.
func (tg *TimeGrabber) Open(path string) error {
	if err := tg.Close(); err != nil {
		return err
	}
	tg.path = path
	tg.lastLineIndex = -1
	tg.lastLineTime = -1
	tg.timeFormatSet = false
	tg.timeInNanos = false
	tg.lastLeftImageName = ""

	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		tg.logger.Infow("failed to open timestamp file, this is fine if none was provided", "path", path, "error", err)
		return errors.Wrapf(err, "cannot open timestamp file %q", path)
	}

	headerLines, err := vutils.CountHeaderLines(f)
	if err != nil {
		utils.UncheckedError(f.Close())
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return multierr.Combine(errors.Wrap(err, "cannot rewind timestamp file"), f.Close())
	}

	scanner := bufio.NewScanner(f)
	for i := 0; i < headerLines; i++ {
		scanner.Scan()
	}
	tg.file = f
	tg.scanner = scanner
	tg.logger.Debugw("opened timestamp file", "path", path, "header_lines", headerLines)
	return nil
}

// IsAvailable returns whether a timestamp file is open.
func (tg *TimeGrabber) IsAvailable() bool {
	return tg.file != nil
}

// Close closes the open file, if any.
func (tg *TimeGrabber) Close() error {
	if tg.file == nil {
		return nil
	}
	err := tg.file.Close()
	tg.file = nil
	tg.scanner = nil
	return errors.Wrapf(err, "cannot close timestamp file %q", tg.path)
}

// LastLeftImageName returns the left image name of the last Malaga frame read.
func (tg *TimeGrabber) LastLeftImageName() string {
	return tg.lastLeftImageName
}

// ReadTimestamp returns the timestamp in seconds on the given zero-based data line, the first
// column of that line. The first value read decides whether the file is in seconds or
// nanoseconds. Asking again for the last line returns the cached value.
func (tg *TimeGrabber) ReadTimestamp(lineIndex int) (float64, error) {
	return tg.advance(lineIndex, tg.parseTimeLine)
}

// ExtractTimestamp returns the timestamp in seconds of the given zero-based frame in a dataset
// specific image list.
func (tg *TimeGrabber) ExtractTimestamp(frameIndex int, variant DatasetVariant) (float64, error) {
	switch variant {
	case DatasetMalaga:
		return tg.advance(frameIndex, tg.parseMalagaFrame)
	case DatasetIndexed:
		return tg.advance(frameIndex, parseIndexedLine)
	default:
		return -1, errors.Errorf("unknown dataset variant %d", variant)
	}
}

// advance consumes one record per index with parse until lineIndex is reached.
func (tg *TimeGrabber) advance(lineIndex int, parse func(line string) (float64, error)) (float64, error) {
	if tg.scanner == nil {
		return -1, ErrNotOpen
	}
	if lineIndex < tg.lastLineIndex {
		tg.logger.Errorw("reading previous timestamps is unsupported", "requested", lineIndex, "last", tg.lastLineIndex)
		return -1, ErrBackwardRead
	}
	if lineIndex == tg.lastLineIndex {
		return tg.lastLineTime, nil
	}

	var stamp float64
	for tg.lastLineIndex < lineIndex {
		if !tg.scanner.Scan() {
			break
		}
		line := tg.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var err error
		stamp, err = parse(line)
		if err != nil {
			tg.logger.Errorw("malformed timestamp line", "line", tg.lastLineIndex+1, "error", err)
			return -1, errors.Wrapf(err, "malformed timestamp at line %d", tg.lastLineIndex+1)
		}
		tg.lastLineIndex++
	}
	if err := tg.scanner.Err(); err != nil {
		return -1, errors.Wrap(err, "error reading timestamp file")
	}
	if tg.lastLineIndex < lineIndex {
		tg.logger.Errorw("failed to find line in timestamp file", "line", lineIndex, "path", tg.path)
		return -1, errors.Wrapf(ErrLineNotFound, "line %d of %q", lineIndex, tg.path)
	}
	tg.lastLineTime = stamp
	return stamp, nil
}

func (tg *TimeGrabber) parseTimeLine(line string) (float64, error) {
	fields := strings.FieldsFunc(line, isSeparator)
	if len(fields) == 0 {
		return 0, errors.Errorf("no timestamp in %q", line)
	}
	token := fields[0]

	if !tg.timeFormatSet {
		first, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return 0, err
		}
		tg.timeInNanos = vutils.IsTimeInNanos(first)
		tg.timeFormatSet = true
		if !tg.timeInNanos {
			return first, nil
		}
	}
	if tg.timeInNanos {
		nanos, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return 0, err
		}
		return vutils.NanoIntToSecDouble(nanos), nil
	}
	return strconv.ParseFloat(token, 64)
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// parseMalagaFrame takes the left image line and reads the paired right image line.
func (tg *TimeGrabber) parseMalagaFrame(leftLine string) (float64, error) {
	if !tg.scanner.Scan() {
		return 0, errors.New("missing right image line")
	}
	tg.lastLeftImageName = leftLine
	right := tg.scanner.Text()
	if len(right) <= malagaStampOffset {
		return 0, errors.Errorf("image name %q too short to hold a timestamp", right)
	}
	end := malagaStampOffset + malagaStampLength
	if end > len(right) {
		end = len(right)
	}
	return strconv.ParseFloat(right[malagaStampOffset:end], 64)
}

func parseIndexedLine(line string) (float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, errors.Errorf("expected frame index and milliseconds, got %q", line)
	}
	ms, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, err
	}
	return ms * 0.001, nil
}
