package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
)

// GETPage serves the tournament list, a tournament's holes or a hole's
// leaderboard depending on which of u, t and h are in the query string.
func (s *Server) GETPage(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r.URL.RawQuery)
	if err != nil {
		writeError(w, r, err)
		return
	}

	content, err := s.pages.Render(r.Context(), Resolve(params))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	writePage(w, content)
}

// POSTScore relays a score posted from submit_score.html and sends the
// browser back to the hole it was submitted for.
func (s *Server) POSTScore(w http.ResponseWriter, r *http.Request) {
	if s.submitLimiter != nil {
		ctx, err := s.submitLimiter.Get(r.Context(), submitRateLimitKey(r))
		if err != nil {
			writeError(w, r, fmt.Errorf("rate limiter error: %w", err))
			return
		}
		if ctx.Reached {
			writeError(w, r, errRateLimited)
			return
		}
	}

	hole, err := parseReferer(r.Referer())
	if err != nil {
		writeError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, r, &InputError{Kind: InputForm, Err: err})
		return
	}
	form, err := parseScoreForm(r.PostForm)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.scores.Submit(r.Context(), hole, form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	slog.Info("score submitted",
		"user", hole.User,
		"tournament", hole.Tournament,
		"hole", hole.Hole,
		"name", res.Score.PlayerName,
		"score", res.Score.PlayerScore,
		"duplicate", res.Duplicate,
		"first_place", res.FirstPlace)

	tournament := hole.Tournament
	http.Redirect(w, r, "/u"+pageHref(hole.User, &tournament, &hole.Hole), http.StatusSeeOther)
}

func (s *Server) GETHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func submitRateLimitKey(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return "submit:" + ip
}

// parsePageParams reads u, t and h. An empty t or h counts as absent.
func parsePageParams(rawQuery string) (PageParams, error) {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return PageParams{}, &InputError{Kind: InputQuery, Err: err}
	}

	p := PageParams{User: values.Get("u")}
	if p.User == "" {
		return PageParams{}, &InputError{Kind: InputQuery, Err: errors.New("missing u")}
	}
	if t := values.Get("t"); t != "" {
		p.Tournament = &t
	}
	if h := values.Get("h"); h != "" {
		n, err := strconv.ParseUint(h, 10, 8)
		if err != nil {
			return PageParams{}, &InputError{Kind: InputQuery, Err: fmt.Errorf("invalid h: %w", err)}
		}
		hole := uint8(n)
		p.Hole = &hole
	}
	return p, nil
}
