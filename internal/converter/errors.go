package converter

import "errors"

// Failure taxonomy for one conversion run. Collaborator failures are wrapped
// with one of these sentinels so callers can distinguish causes with
// errors.Is instead of string matching.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidDirective     = errors.New("invalid directive")
	ErrRenderingUnavailable = errors.New("slide rendering unavailable")
	ErrSynthesisFailed      = errors.New("speech synthesis failed")
	ErrEncodingFailed       = errors.New("video encoding failed")
)
