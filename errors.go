package milsym

import "errors"

var (
	// ErrInvalidArgument reports a missing or malformed symbol identifier,
	// or a nil raster/color handed to an operation that requires one.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAssetNotFound reports that an image asset is absent or cannot be decoded.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrEmptyResult reports that every layer of a symbol was skipped or missing.
	ErrEmptyResult = errors.New("no layer produced for symbol")

	// ErrEncoding reports a failure while encoding or writing the rendered symbol.
	ErrEncoding = errors.New("encoding error")
)
