package render

import "github.com/ardnew/includer/errs"

//nolint:gochecknoglobals
var (
	ErrLocalsJSON       = errs.New("malformed include locals")
	ErrMaxDepthExceeded = errs.New("include depth exceeded")
	ErrReadInclude      = errs.New("read include file")
	ErrTemplate         = errs.New("render template")
	ErrContentHook      = errs.New("process include contents")
)
