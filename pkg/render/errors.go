package render

import "fmt"

// InstanceRenderError indicates a render call that could not produce a
// meaningful Result at all. Per-field and per-section degradations never
// surface as this error; only structural failures of the whole render do.
type InstanceRenderError struct {
	// ObjectID identifies the object being rendered, zero if unknown.
	ObjectID int

	// Cause is the underlying error.
	Cause error
}

func (e *InstanceRenderError) Error() string {
	if e.ObjectID != 0 {
		return fmt.Sprintf("render of object #%d failed: %v", e.ObjectID, e.Cause)
	}
	return fmt.Sprintf("render failed: %v", e.Cause)
}

func (e *InstanceRenderError) Unwrap() error {
	return e.Cause
}
