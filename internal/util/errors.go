package util

import "errors"

var (
	ErrProfileNotFound     = errors.New("learning profile not found")
	ErrInvalidAssessment   = errors.New("invalid assessment payload")
	ErrInvalidMetrics      = errors.New("outcome metrics out of range")
	ErrInvalidContentType  = errors.New("unknown content type")
	ErrClientNotFound      = errors.New("service client not found")
	ErrClientDisabled      = errors.New("service client disabled")
	ErrInvalidClientSecret = errors.New("invalid client secret")
)
