package errcode

// Error code convention:
// - 0: no error
// - 4xxx: caller errors (auth, validation, missing rows)
// - 5xxx: system errors (store unavailable, unexpected failure)
const (
	OK                = 0
	AuthRequired      = 4001
	Forbidden         = 4003
	NotFound          = 4004
	ValidationFailure = 4100
	SystemError       = 5000
)
