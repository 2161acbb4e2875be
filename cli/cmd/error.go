package cmd

import "github.com/ardnew/includer/errs"

//nolint:gochecknoglobals
var (
	ErrWriteConfig = errs.New("write configuration file")
	ErrFileExists  = errs.New("file exists (use --force to overwrite)")
	ErrNoSources   = errs.New("no source files given")
	ErrOption      = errs.New("invalid option")
)
