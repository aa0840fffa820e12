package main

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// recentlyEndedWindow is how long a finished tournament stays listed.
const recentlyEndedWindow = 3 * 24 * time.Hour

// PageKind enumerates the three pages the read path can show.
type PageKind int

const (
	SelectTournament PageKind = iota
	SelectHole
	ViewHole
)

// PageIdentity is the resolved page. Only the fields relevant to Kind are
// set: User always, Tournament for SelectHole and ViewHole, Hole for
// ViewHole.
type PageIdentity struct {
	Kind       PageKind
	User       string
	Tournament string
	Hole       uint8
}

// Resolve picks the page for the given parameters. A hole without a
// tournament is ignored.
func Resolve(p PageParams) PageIdentity {
	if p.Tournament == nil {
		return PageIdentity{Kind: SelectTournament, User: p.User}
	}
	if p.Hole == nil {
		return PageIdentity{Kind: SelectHole, User: p.User, Tournament: *p.Tournament}
	}
	return PageIdentity{Kind: ViewHole, User: p.User, Tournament: *p.Tournament, Hole: *p.Hole}
}

// PageContent is everything a page shows, free of markup.
type PageContent struct {
	Title       string
	Sponsor     string
	Sections    []Section
	Leaderboard *Leaderboard
	SubmitHref  string
}

// Section is a heading followed by a list of links, or by Empty when there
// are none.
type Section struct {
	Heading string
	Links   []Link
	Empty   string
}

type Link struct {
	Text string
	Href string
}

// Leaderboard is the score table of a hole. Empty is shown across all
// columns when Rows is empty.
type Leaderboard struct {
	Rows  []LeaderboardRow
	Empty string
}

type LeaderboardRow struct {
	Rank  string
	Name  string
	Score string
}

// Upstream is the part of UpstreamClient the pages and the score
// submission need.
type Upstream interface {
	ListTournaments(ctx context.Context, user string) ([]ShortTournament, error)
	GetTournament(ctx context.Context, user, tournament string) (*Tournament, error)
	GetHole(ctx context.Context, user, tournament string, hole uint8) (*Hole, error)
	PostScore(ctx context.Context, p HoleParams, score Score) error
}

// PageRenderer fetches what a page needs and lays it out as PageContent.
type PageRenderer struct {
	upstream Upstream
	now      func() time.Time
}

func NewPageRenderer(upstream Upstream, now func() time.Time) *PageRenderer {
	if now == nil {
		now = time.Now
	}
	return &PageRenderer{upstream: upstream, now: now}
}

// Render dispatches on the page kind.
func (pr *PageRenderer) Render(ctx context.Context, page PageIdentity) (*PageContent, error) {
	switch page.Kind {
	case SelectTournament:
		return pr.selectTournament(ctx, page.User)
	case SelectHole:
		return pr.selectHole(ctx, page.User, page.Tournament)
	case ViewHole:
		return pr.viewHole(ctx, page.User, page.Tournament, page.Hole)
	default:
		return nil, fmt.Errorf("unknown page kind %d", page.Kind)
	}
}

func (pr *PageRenderer) selectTournament(ctx context.Context, user string) (*PageContent, error) {
	tournaments, err := pr.upstream.ListTournaments(ctx, user)
	if err != nil {
		return nil, err
	}
	now, err := secsSinceEpoch(pr.now())
	if err != nil {
		return nil, err
	}

	active, ended := partitionTournaments(tournaments, now)

	toLinks := func(ts []ShortTournament) []Link {
		links := make([]Link, 0, len(ts))
		for _, t := range ts {
			links = append(links, Link{
				Text: t.TournamentName,
				Href: pageHref(user, &t.TournamentID, nil),
			})
		}
		return links
	}

	content := &PageContent{
		Title: "Vælg en turnering",
		Sections: []Section{{
			Heading: "Aktive turneringer",
			Links:   toLinks(active),
			Empty:   "Ingen aktive turneringer",
		}},
	}
	if len(ended) > 0 {
		content.Sections = append(content.Sections, Section{
			Heading: "Afsluttede turneringer",
			Links:   toLinks(ended),
		})
	}
	return content, nil
}

// partitionTournaments splits tournaments into active ones and ones that
// ended within recentlyEndedWindow of now. Everything else is dropped.
// Upstream order is kept in both.
func partitionTournaments(tournaments []ShortTournament, now int64) (active, ended []ShortTournament) {
	cutoff := now - int64(recentlyEndedWindow/time.Second)
	for _, t := range tournaments {
		switch {
		case t.Active:
			active = append(active, t)
		case t.TEnd >= cutoff:
			ended = append(ended, t)
		}
	}
	return active, ended
}

func (pr *PageRenderer) selectHole(ctx context.Context, user, tournament string) (*PageContent, error) {
	t, err := pr.upstream.GetTournament(ctx, user, tournament)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(t.Holes))
	for _, h := range t.Holes {
		n := h.HoleNumber
		links = append(links, Link{
			Text: holeName(n),
			Href: pageHref(user, &tournament, &n),
		})
	}

	return &PageContent{
		Title:   t.TournamentName,
		Sponsor: t.TournamentSponsor,
		Sections: []Section{{
			Heading: "Vælg et hul",
			Links:   links,
			Empty:   "Der er ingen huller i denne turnering",
		}},
	}, nil
}

func (pr *PageRenderer) viewHole(ctx context.Context, user, tournament string, hole uint8) (*PageContent, error) {
	h, err := pr.upstream.GetHole(ctx, user, tournament, hole)
	if err != nil {
		return nil, err
	}

	title := h.HoleText
	if title == "" {
		title = holeName(h.HoleNumber)
	}

	board := &Leaderboard{Empty: "Der er ingen noteringer endnu"}
	for i, s := range h.Scores {
		board.Rows = append(board.Rows, LeaderboardRow{
			Rank:  strconv.Itoa(i+1) + ".",
			Name:  s.PlayerName,
			Score: formatScore(s.PlayerScore) + "m",
		})
	}

	content := &PageContent{
		Title:       title,
		Sponsor:     h.HoleSponsor,
		Leaderboard: board,
	}

	active, err := pr.tournamentActive(ctx, user, tournament)
	if err != nil {
		return nil, err
	}
	if active {
		content.SubmitHref = "/submit_score.html" + pageHref(user, &tournament, &hole)
	}
	return content, nil
}

// tournamentActive looks tournament up in the user's tournament list. A
// tournament missing from the list is inactive.
func (pr *PageRenderer) tournamentActive(ctx context.Context, user, tournament string) (bool, error) {
	tournaments, err := pr.upstream.ListTournaments(ctx, user)
	if err != nil {
		return false, err
	}
	for _, t := range tournaments {
		if t.TournamentID == tournament {
			return t.Active, nil
		}
	}
	return false, nil
}
