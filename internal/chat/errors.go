package chat

import "errors"

// Sentinel errors for request handling. Document-path sentinels
// (ErrUnsupportedFileType, ErrSourceFetch) live in the loader package;
// check all of them with errors.Is.
var (
	// ErrGeneration indicates the generation adapter failed after
	// retries.
	ErrGeneration = errors.New("generation failed")

	// ErrLogWrite indicates the call-log write failed. This is fatal
	// for the whole request: the produced message is discarded.
	ErrLogWrite = errors.New("call log write failed")
)
