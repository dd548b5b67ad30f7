package command

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrReadInput    = errors.New("cannot read standard input")
	ErrNotObject    = errors.New("expected JSON object as input")
	ErrNotArray     = errors.New("expected JSON array as input")
	ErrPathNotArray = errors.New("path does not lead to an array")
	ErrMissingValue = errors.New("missing value after the document")
)
