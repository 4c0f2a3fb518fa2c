package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpstreamErrorRoundTrip(t *testing.T) {
	orig := &UpstreamError{Status: 500, Body: "x - y"}
	got, ok := ParseUpstreamError(orig.Error())
	require.True(t, ok)
	assert.Equal(t, orig, got)
}

func TestParseUpstreamErrorRejectsOtherMessages(t *testing.T) {
	for _, msg := range []string{
		"Missing required fields: 'start', 'end', 'asset'",
		"Playfair API returned an error: abc - x",
		"Playfair API returned an error: 500",
		"",
	} {
		_, ok := ParseUpstreamError(msg)
		assert.False(t, ok, msg)
	}
}

func TestFeedRequestIsLatest(t *testing.T) {
	assert.True(t, FeedRequest{Limit: 10, Page: 1}.IsLatest())
	assert.False(t, FeedRequest{Start: "2024-01-01", End: "2024-01-02"}.IsLatest())
	assert.False(t, FeedRequest{Asset: "AAPL"}.IsLatest())
}
