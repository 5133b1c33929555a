package file

import "errors"

var (
	// ErrNoFile indicates the request carried no file payload.
	ErrNoFile = errors.New("no file provided")
	// ErrFileNotFound signals that no metadata record matches the identifier.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileGone signals that a metadata record exists but its blob is missing.
	ErrFileGone = errors.New("file already deleted")
	// ErrFileTooLarge signals that the upload exceeds the configured size ceiling.
	ErrFileTooLarge = errors.New("file too large")
	// ErrTooManyFiles signals that a batch exceeds the configured entry limit.
	ErrTooManyFiles = errors.New("too many files in batch")
)
