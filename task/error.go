package task

import "github.com/ardnew/includer/errs"

//nolint:gochecknoglobals
var (
	ErrReadSource     = errs.New("read source file")
	ErrWriteOutput    = errs.New("write output file")
	ErrStdoutMultiple = errs.New("multiple sources require a destination")
	ErrSourcePattern  = errs.New("invalid source pattern")
)
