package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	opListTournaments = "list_tournaments"
	opGetTournament   = "get_tournament"
	opGetHole         = "get_hole"
	opPostScore       = "post_score"
)

// UpstreamClient talks to the bullseyegolf API server. Every call blocks
// until the server answers; nothing is retried.
type UpstreamClient struct {
	baseURL *url.URL
	http    *http.Client
	metrics *metrics
}

// NewUpstreamClient builds a client for server. A bare host name is
// assumed to be served over https.
func NewUpstreamClient(server string, httpClient *http.Client, m *metrics) (*UpstreamClient, error) {
	base, err := parseServerURL(server)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &UpstreamClient{baseURL: base, http: httpClient, metrics: m}, nil
}

func parseServerURL(server string) (*url.URL, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, fmt.Errorf("api server url is empty")
	}
	if !strings.Contains(server, "://") {
		server = "https://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("invalid api server url %q: %w", server, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid api server url %q: missing host", server)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}

func (c *UpstreamClient) endpoint(segments ...string) string {
	p := c.baseURL.EscapedPath()
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return c.baseURL.Scheme + "://" + c.baseURL.Host + p
}

// ListTournaments returns every tournament the user can select, in the
// order the API server returns them.
func (c *UpstreamClient) ListTournaments(ctx context.Context, user string) ([]ShortTournament, error) {
	var tournaments []ShortTournament
	err := c.getJSON(ctx, opListTournaments, c.endpoint(user), nil, &tournaments)
	return tournaments, err
}

// GetTournament fetches a tournament and its holes. Hole images are never
// shown so the server is asked to leave them out.
func (c *UpstreamClient) GetTournament(ctx context.Context, user, tournament string) (*Tournament, error) {
	header := http.Header{}
	header.Set("No-Hole-Images", "true")

	t := &Tournament{}
	if err := c.getJSON(ctx, opGetTournament, c.endpoint(user, tournament), header, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetHole fetches a single hole including its leaderboard.
func (c *UpstreamClient) GetHole(ctx context.Context, user, tournament string, hole uint8) (*Hole, error) {
	h := &Hole{}
	u := c.endpoint(user, tournament, strconv.Itoa(int(hole)))
	if err := c.getJSON(ctx, opGetHole, u, nil, h); err != nil {
		return nil, err
	}
	return h, nil
}

// PostScore adds score to the hole's leaderboard. The response body is
// ignored; only the status matters.
func (c *UpstreamClient) PostScore(ctx context.Context, p HoleParams, score Score) error {
	body, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("unable to encode score: %w", err)
	}

	u := c.endpoint(p.User, p.Tournament, strconv.Itoa(int(p.Hole)))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("unable to post score (new): %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(opPostScore, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	c.metrics.observeResult(opPostScore, "ok")
	return nil
}

func (c *UpstreamClient) getJSON(ctx context.Context, op, u string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("unable to fetch %s (new): %w", op, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.observeResult(op, "decode_error")
		return &UpstreamError{Op: op, Kind: UpstreamDecode, Err: err}
	}
	c.metrics.observeResult(op, "ok")
	return nil
}

// do sends req and turns transport failures and non-2xx answers into
// *UpstreamError. On success the caller owns resp.Body and records the
// result once the body has been consumed.
func (c *UpstreamClient) do(op string, req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.observeLatency(op, time.Since(start))
	if err != nil {
		c.metrics.observeResult(op, "connection_error")
		return nil, &UpstreamError{Op: op, Kind: UpstreamConnection, Err: err}
	}

	if resp.StatusCode/100 != 2 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		c.metrics.observeResult(op, "status_error")
		return nil, &UpstreamError{Op: op, Kind: UpstreamStatus, StatusCode: resp.StatusCode}
	}

	return resp, nil
}
