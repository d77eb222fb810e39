//go:build release

package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dixieflatline76/Shelf/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logDir is the directory holding the rotated log files. Windows keeps them
// in the cache directory, everything else next to the scripts and toolbars.
func logDir() (string, error) {
	if runtime.GOOS != "windows" {
		return config.UserPath(config.LogSubDir)
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}
	return filepath.Join(cache, config.LogWinSubDir), nil
}

func init() {
	dir, err := logDir()
	if err != nil {
		log.Fatalf("No log directory: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create log directory %s: %v", dir, err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, config.AppName+config.LogExt),
		MaxSize:    config.LogMaxSizeMB,
		MaxBackups: config.LogMaxBackups,
		MaxAge:     config.LogMaxAgeDays,
		Compress:   true,
	})
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// Print writes to the rotated log file.
func Print(v ...any) {
	log.Output(2, fmt.Sprint(v...))
}

// Printf writes a formatted line to the rotated log file.
func Printf(format string, v ...any) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Println writes a line to the rotated log file.
func Println(v ...any) {
	log.Output(2, fmt.Sprintln(v...))
}

// Fatal logs and exits with status 1.
func Fatal(v ...any) {
	log.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted line and exits with status 1.
func Fatalf(format string, v ...any) {
	log.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatalln logs a line and exits with status 1.
func Fatalln(v ...any) {
	log.Output(2, fmt.Sprintln(v...))
	os.Exit(1)
}

// Debug is dropped in release builds.
func Debug(v ...any) {}

// Debugf is dropped in release builds.
func Debugf(format string, v ...any) {}
