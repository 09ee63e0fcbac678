package fakestore

import "errors"

// Error definitions for the fakestore package.
var (
	// ErrUpstreamUnavailable is returned when the upstream API could not be
	// reached or did not answer in time.
	ErrUpstreamUnavailable = errors.New("upstream store API unavailable")

	// ErrInvalidResponse is returned when a successful upstream reply does
	// not carry valid JSON.
	ErrInvalidResponse = errors.New("upstream returned an invalid JSON body")

	// ErrInvalidConfig is returned when the client is constructed with an
	// unusable base URL or timeout.
	ErrInvalidConfig = errors.New("invalid upstream configuration")
)
