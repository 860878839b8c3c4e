package tabledraw

import "errors"

// Errors reported by table registration and rendering. Call sites wrap them
// with position or name context, so test with errors.Is.
var (
	// ErrIndexOutOfRange is returned when a cell or frame position lies
	// outside [0, rows) x [0, cols). Positions are never clamped.
	ErrIndexOutOfRange = errors.New("tabledraw: cell index out of range")

	// ErrUnknownStyle is returned when a style name is not in the registry.
	ErrUnknownStyle = errors.New("tabledraw: unknown style")

	// ErrNotBuilt is returned by the visibility and border accessors when no
	// render pass is in progress.
	ErrNotBuilt = errors.New("tabledraw: layout not built")

	// ErrUnsupportedContent is returned for a custom cell without a content
	// producer and for a block cell without a block definition.
	ErrUnsupportedContent = errors.New("tabledraw: unsupported cell content")

	// ErrRenderInProgress is returned when Render is entered while another
	// render pass holds the table.
	ErrRenderInProgress = errors.New("tabledraw: render already in progress")

	// ErrUnknownCell is returned when a cell handle was not issued by the table.
	ErrUnknownCell = errors.New("tabledraw: unknown cell handle")
)
