package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// videoExtensions are the lower-case extensions IsVideoFile accepts.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mov":  true,
	".mkv":  true,
	".m4v":  true,
	".webm": true,
}

// ResolveFile returns the path of the given file relative to the root
// of the codebase. For example, if this file currently
// lives in utils/file.go and ./foo/bar/baz is given, then the result
// is foo/bar/baz. This is helpful when you don't want to relatively
// refer to files when you're not sure where the caller actually
// lives in relation to the target file.
func ResolveFile(fn string) string {
	//nolint:dogsled
	_, thisFilePath, _, _ := runtime.Caller(0)
	thisDirPath, err := filepath.Abs(filepath.Dir(thisFilePath))
	if err != nil {
		panic(err)
	}
	return filepath.Join(thisDirPath, "..", fn)
}

// PathExist returns whether a file or directory exists at path.
func PathExist(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// DirExist returns whether path names an existing directory.
func DirExist(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsVideoFile reports whether path looks like a video file judging by its extension.
func IsVideoFile(path string) bool {
	if strings.HasSuffix(path, "/") {
		return false
	}
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}
