package config

import (
	"path/filepath"
	"strings"
)

// AppVersion is the version of the application.
var AppVersion string // Or get it from version.txt during build

// AppName is the name of the application.
const AppName = "Shelf"

// AppID is the unique fyne application ID, also the preferences namespace.
const AppID = "com.dixieflatline76.shelf"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension of the log file.
const LogExt = ".log"

// Log rotation limits for release builds.
const (
	LogMaxSizeMB  = 10 // MB
	LogMaxBackups = 2
	LogMaxAgeDays = 28 // days
)

// ScriptsSubDir is the per-user directory scanned for toolbar scripts.
var ScriptsSubDir = filepath.Join(LogSubDir, "scripts")

// ToolbarsSubDir is the per-user directory whose toolbar documents take precedence over the built-in ones.
var ToolbarsSubDir = filepath.Join(LogSubDir, "toolbars")
