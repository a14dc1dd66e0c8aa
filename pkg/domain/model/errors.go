package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrMissingAttribute = goerr.New("account is missing a required attribute")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrUnexpectedStatus = goerr.New("unexpected HTTP status from Grafana")
)
