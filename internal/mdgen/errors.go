package mdgen

import "errors"

// Sentinel errors for Markdown generation.
var (
	ErrNilSpec        = errors.New("spec cannot be nil")
	ErrSampleTemplate = errors.New("code sample template failed")
	ErrExample        = errors.New("cannot format example")
)
