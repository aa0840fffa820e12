package main

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// firstPlaceMarker is appended to the name of a score that takes the lead.
const firstPlaceMarker = " 🏆"

// ToScore converts the form into the score sent to the API server: the
// member number (if any) goes in front of the name and the two score
// fields are meters and centimeters.
func (f ScoreForm) ToScore() Score {
	name := f.Name
	if f.Member != nil {
		name = *f.Member + " " + name
	}
	cm := decimal.New(int64(f.ScoreM)*100+int64(f.ScoreCM), -2)
	score, _ := cm.Float64()
	return Score{PlayerName: name, PlayerScore: score}
}

// formatScore renders a score with two decimals and a decimal comma.
func formatScore(score float64) string {
	return strings.Replace(decimal.NewFromFloat(score).StringFixed(2), ".", ",", 1)
}

// parseScoreForm reads the fields posted by submit_score.html. An empty
// member field counts as no member.
func parseScoreForm(form url.Values) (ScoreForm, error) {
	if !form.Has("name") {
		return ScoreForm{}, &InputError{Kind: InputForm, Err: errors.New("missing name")}
	}
	f := ScoreForm{Name: form.Get("name")}

	if m := form.Get("member"); m != "" {
		f.Member = &m
	}

	var err error
	if f.ScoreM, err = parseUint8(form, "score_m"); err != nil {
		return ScoreForm{}, &InputError{Kind: InputForm, Err: err}
	}
	if f.ScoreCM, err = parseUint8(form, "score_cm"); err != nil {
		return ScoreForm{}, &InputError{Kind: InputForm, Err: err}
	}
	return f, nil
}

// parseReferer extracts the hole a score belongs to from the URL of the
// page the form was posted from.
func parseReferer(referer string) (HoleParams, error) {
	if referer == "" {
		return HoleParams{}, &InputError{Kind: InputReferer, Err: errors.New("missing referer header")}
	}
	_, rawQuery, ok := strings.Cut(referer, "?")
	if !ok {
		return HoleParams{}, &InputError{Kind: InputReferer, Err: errors.New("referer has no query string")}
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return HoleParams{}, &InputError{Kind: InputQuery, Err: err}
	}
	user := values.Get("u")
	tournament := values.Get("t")
	if user == "" || tournament == "" {
		return HoleParams{}, &InputError{Kind: InputQuery, Err: errors.New("referer must carry u, t and h")}
	}
	hole, err := parseUint8(values, "h")
	if err != nil {
		return HoleParams{}, &InputError{Kind: InputQuery, Err: err}
	}
	return HoleParams{User: user, Tournament: tournament, Hole: hole}, nil
}

// SubmitResult describes what Submit did with a score.
type SubmitResult struct {
	// Score is the score as sent upstream, including any first place marker.
	Score      Score
	Duplicate  bool
	FirstPlace bool
}

// ScoreSubmitter relays scores to the API server, skipping duplicates.
type ScoreSubmitter struct {
	upstream Upstream
	metrics  *metrics
}

func NewScoreSubmitter(upstream Upstream, m *metrics) *ScoreSubmitter {
	return &ScoreSubmitter{upstream: upstream, metrics: m}
}

// Submit posts form to the hole's leaderboard unless an identical score is
// already on it. The leaderboard is read once, right before the write, so
// two concurrent submissions may both be flagged or both be written.
func (s *ScoreSubmitter) Submit(ctx context.Context, p HoleParams, form ScoreForm) (SubmitResult, error) {
	score := form.ToScore()

	hole, err := s.upstream.GetHole(ctx, p.User, p.Tournament, p.Hole)
	if err != nil {
		s.metrics.observeSubmission("rejected")
		return SubmitResult{}, err
	}

	if isDuplicate(hole.Scores, score) {
		s.metrics.observeSubmission("duplicate")
		return SubmitResult{Score: score, Duplicate: true}, nil
	}

	res := SubmitResult{Score: score}
	if takesFirstPlace(hole.Scores, score) {
		res.FirstPlace = true
		res.Score.PlayerName += firstPlaceMarker
	}

	if err := s.upstream.PostScore(ctx, p, res.Score); err != nil {
		s.metrics.observeSubmission("rejected")
		return SubmitResult{}, err
	}
	s.metrics.observeSubmission("submitted")
	return res, nil
}

// isDuplicate reports whether score is already on the leaderboard, with or
// without the first place marker.
func isDuplicate(leaderboard []Score, score Score) bool {
	flagged := Score{PlayerName: score.PlayerName + firstPlaceMarker, PlayerScore: score.PlayerScore}
	for _, s := range leaderboard {
		if s == score || s == flagged {
			return true
		}
	}
	return false
}

// takesFirstPlace reports whether score beats the current leader. The
// leaderboard is ordered best first.
func takesFirstPlace(leaderboard []Score, score Score) bool {
	if len(leaderboard) == 0 {
		return true
	}
	return score.PlayerScore < leaderboard[0].PlayerScore
}
