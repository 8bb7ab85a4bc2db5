package editor

import (
	"errors"
	"fmt"
)

// ErrSettingNotFound is returned when settings.json is missing or does not
// define the requested key.
var ErrSettingNotFound = errors.New("setting not found")

// DeserializationError reports a file the editor wrote that could not be
// decoded. Callers log it and carry on with other sources.
type DeserializationError struct {
	Path string
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserializing %s: %v", e.Path, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
