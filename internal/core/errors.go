package core

import "errors"

var (
	// ErrInvalidArgument indicates a nil, empty, or malformed input value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBadMappingConfig indicates the mapping document could not be read or parsed.
	ErrBadMappingConfig = errors.New("invalid mapping config")
	// ErrUnsupportedInstrument indicates no grammar exists for the requested class or code.
	ErrUnsupportedInstrument = errors.New("unsupported instrument")
	// ErrAmbiguousYear indicates contract year resolution exhausted its search horizon.
	ErrAmbiguousYear = errors.New("ambiguous contract year")
	// ErrAmbiguousFormat indicates a ticker matched zero or several grammars without a hint.
	ErrAmbiguousFormat = errors.New("ambiguous ticker format")
)
