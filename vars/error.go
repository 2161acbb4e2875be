package vars

import "github.com/ardnew/includer/errs"

var (
	ErrParseJSON = errs.New("invalid JSON object")
	ErrSerialize = errs.New("serialize value")
	ErrExpand    = errs.New("expand value")
)
