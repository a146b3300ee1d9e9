package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACGFatalLogMsg is used if app, cfg or gateway var pointer is nil.
	ErrNilACGFatalLogMsg = "app, cfg or gateway is nil"
)
