package main

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "query",
			err:     &InputError{Kind: InputQuery, Err: errors.New("missing u")},
			status:  http.StatusBadRequest,
			message: "Der er en fejl i URL'en",
		},
		{
			name:    "referer",
			err:     &InputError{Kind: InputReferer},
			status:  http.StatusBadRequest,
			message: "referrer policy",
		},
		{
			name:    "form",
			err:     &InputError{Kind: InputForm},
			status:  http.StatusBadRequest,
			message: "ikke i det rigtige format",
		},
		{
			name:    "connection",
			err:     &UpstreamError{Op: opGetHole, Kind: UpstreamConnection, Err: errors.New("refused")},
			status:  http.StatusServiceUnavailable,
			message: "kunne ikke kommunikere med API serveren",
		},
		{
			name:    "upstream status",
			err:     &UpstreamError{Op: opGetHole, Kind: UpstreamStatus, StatusCode: 404},
			status:  http.StatusBadGateway,
			message: "status 404",
		},
		{
			name:    "wrapped upstream status",
			err:     fmt.Errorf("rendering page: %w", &UpstreamError{Op: opGetHole, Kind: UpstreamStatus, StatusCode: 500}),
			status:  http.StatusBadGateway,
			message: "status 500",
		},
		{
			name:    "decode is a bug",
			err:     &UpstreamError{Op: opListTournaments, Kind: UpstreamDecode, Err: errors.New("unexpected EOF")},
			status:  http.StatusInternalServerError,
			message: "dette er en bug",
		},
		{
			name:    "rate limited",
			err:     errRateLimited,
			status:  http.StatusTooManyRequests,
			message: "for mange noteringer",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "dette er en bug",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page := classify(c.err)
			assert.Equal(t, c.status, page.Status)
			assert.Contains(t, page.Message, c.message)
		})
	}
}

func TestClassifyInternalShowsDetail(t *testing.T) {
	page := classify(errors.New("boom"))
	assert.Equal(t, "boom", page.Detail)

	page = classify(&InputError{Kind: InputQuery})
	assert.Equal(t, "....org/u?u=brugernavn", page.Detail)
}
