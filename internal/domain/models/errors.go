package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidRange      = errors.New("invalid timestamp format or end time must be after start time")
	ErrInvalidInterval   = errors.New("interval must be one of day, week, month")
	ErrCredentialMissing = errors.New("prediction api credential is not configured")
	ErrMalformedResponse = errors.New("invalid response format from prediction api")
	ErrRangeTooLarge     = errors.New("time range produces too many buckets for the interval")
)

const upstreamPrefix = "Playfair API returned an error: "

// UpstreamError reports a non-success answer from the prediction feed.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s%d - %s", upstreamPrefix, e.Status, e.Body)
}

// ParseUpstreamError recovers an UpstreamError from its own message, as
// relayed by a proxy gateway.
func ParseUpstreamError(msg string) (*UpstreamError, bool) {
	rest, ok := strings.CutPrefix(msg, upstreamPrefix)
	if !ok {
		return nil, false
	}
	code, body, ok := strings.Cut(rest, " - ")
	if !ok {
		return nil, false
	}
	status, err := strconv.Atoi(code)
	if err != nil {
		return nil, false
	}
	return &UpstreamError{Status: status, Body: body}, true
}

// GatewayError reports a failure of the proxy gateway itself, such as a
// rejected request or an unavailable gateway.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("prediction gateway returned an error: %d - %s", e.Status, e.Body)
}
