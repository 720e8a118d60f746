package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display and its bounds.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Window contains metadata for a top-level window.
type Window struct {
	ID    WindowID
	PID   int
	AppID string
	Title string
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	ListWindows() ([]Window, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Restore(windowID WindowID) error
}
