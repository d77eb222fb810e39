package ui

// Toolbar configuration names of the window kinds.
const (
	EditorToolbar = "Editor"
	ViewerToolbar = "Viewer"
)

// toolbarNames lists every toolbar configuration the application opens windows for.
var toolbarNames = []string{EditorToolbar, ViewerToolbar}

const (
	documentWindowWidth  = 900
	documentWindowHeight = 640
	prefsWindowWidth     = 640
	prefsWindowHeight    = 480
)

// untitled is the title of documents that have not been saved or opened.
const untitled = "Untitled"
