package main

import (
	"context"
	"fmt"
)

// fakeUpstream is an in-memory API server. Posted scores are appended to
// the hole's leaderboard so repeated submissions see earlier ones.
type fakeUpstream struct {
	tournaments []ShortTournament
	tournament  map[string]*Tournament
	holes       map[string]*Hole

	listErr error
	holeErr error
	postErr error

	calls  []string
	posted []Score
}

func holeKey(tournament string, hole uint8) string {
	return fmt.Sprintf("%s/%d", tournament, hole)
}

func (f *fakeUpstream) ListTournaments(ctx context.Context, user string) ([]ShortTournament, error) {
	f.calls = append(f.calls, "list:"+user)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tournaments, nil
}

func (f *fakeUpstream) GetTournament(ctx context.Context, user, tournament string) (*Tournament, error) {
	f.calls = append(f.calls, "tournament:"+user+"/"+tournament)
	t, ok := f.tournament[tournament]
	if !ok {
		return nil, &UpstreamError{Op: opGetTournament, Kind: UpstreamStatus, StatusCode: 404}
	}
	return t, nil
}

func (f *fakeUpstream) GetHole(ctx context.Context, user, tournament string, hole uint8) (*Hole, error) {
	f.calls = append(f.calls, "hole:"+user+"/"+holeKey(tournament, hole))
	if f.holeErr != nil {
		return nil, f.holeErr
	}
	h, ok := f.holes[holeKey(tournament, hole)]
	if !ok {
		return nil, &UpstreamError{Op: opGetHole, Kind: UpstreamStatus, StatusCode: 404}
	}
	cp := *h
	cp.Scores = append([]Score(nil), h.Scores...)
	return &cp, nil
}

func (f *fakeUpstream) PostScore(ctx context.Context, p HoleParams, score Score) error {
	f.calls = append(f.calls, "post:"+p.User+"/"+holeKey(p.Tournament, p.Hole))
	if f.postErr != nil {
		return f.postErr
	}
	f.posted = append(f.posted, score)
	if h, ok := f.holes[holeKey(p.Tournament, p.Hole)]; ok {
		h.Scores = append(h.Scores, score)
	}
	return nil
}
