package logging

import (
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileAppender writes console formatted lines to a file that is rotated by size.
type FileAppender struct {
	*ConsoleAppender
	roller *lumberjack.Logger
}

// NewFileAppender returns an appender writing to path. The file is rotated at maxSizeMB
// megabytes, keeping two compressed backups.
func NewFileAppender(path string, maxSizeMB int) *FileAppender {
	roller := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 2,
		Compress:   true,
	}
	return &FileAppender{ConsoleAppender: NewWriterAppender(roller), roller: roller}
}

// Close closes the current log file.
func (fa *FileAppender) Close() error {
	return fa.roller.Close()
}
