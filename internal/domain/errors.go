package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that the requested account does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUpstream reports a non-2xx answer from the GitHub API.
	ErrUpstream = errors.New("upstream error")
	// ErrUnexpected reports a transport or decoding failure.
	ErrUnexpected = errors.New("unexpected failure")
	// ErrEmptyUsername reports a blank username.
	ErrEmptyUsername = errors.New("username must not be empty")
	// ErrActivityUnavailable reports that commit statistics could not be used for a repository.
	ErrActivityUnavailable = errors.New("commit activity unavailable")
)

// UpstreamError is returned when a GitHub endpoint answers with a non-2xx status.
type UpstreamError struct {
	Resource   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	if e.Resource == "repositories" {
		return fmt.Sprintf("Failed to fetch repositories: %d", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API error: %d", e.StatusCode)
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NotFoundError is returned when an account lookup answers 404.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User %q not found", e.Username)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Kind classifies an error for presentation.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindUpstream   Kind = "upstream_error"
	KindInvalid    Kind = "invalid_request"
	KindUnexpected Kind = "unexpected_failure"
)

// KindOf returns the presentation kind of err. Unknown errors are unexpected.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUpstream):
		return KindUpstream
	case errors.Is(err, ErrEmptyUsername):
		return KindInvalid
	default:
		return KindUnexpected
	}
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	var nf *NotFoundError
	var up *UpstreamError
	switch {
	case errors.As(err, &nf):
		return nf.Error()
	case errors.As(err, &up):
		return up.Error()
	case errors.Is(err, ErrEmptyUsername):
		return ErrEmptyUsername.Error()
	default:
		return "Failed to fetch GitHub data"
	}
}
