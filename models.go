package main

// ShortTournament is one entry of the tournament list vended by GET /{user}.
type ShortTournament struct {
	TournamentID   string `json:"tournament_id"`
	TournamentName string `json:"tournament_name"`
	Active         bool   `json:"active"`
	TStart         int64  `json:"t_start"`
	TEnd           int64  `json:"t_end"`
}

// vended by GET /{user}/{tournament}
type Tournament struct {
	TournamentID      string `json:"tournament_id"`
	TournamentName    string `json:"tournament_name"`
	TournamentSponsor string `json:"tournament_sponsor"`
	Holes             []Hole `json:"holes"`
}

// Hole is vended by GET /{user}/{tournament}/{hole}. Scores are in
// leaderboard order, best first.
type Hole struct {
	HoleNumber  uint8   `json:"hole_number"`
	HoleText    string  `json:"hole_text"`
	HoleSponsor string  `json:"hole_sponsor"`
	Scores      []Score `json:"scores"`
}

// Score is both a leaderboard entry and the body of POST /{user}/{tournament}/{hole}.
type Score struct {
	PlayerName  string  `json:"player_name"`
	PlayerScore float64 `json:"player_score"`
}

// ScoreForm is the raw form posted from submit_score.html.
type ScoreForm struct {
	Name    string
	Member  *string
	ScoreM  uint8
	ScoreCM uint8
}

// PageParams identifies the requested page. Tournament and Hole are nil
// when absent from the query string.
type PageParams struct {
	User       string
	Tournament *string
	Hole       *uint8
}

// HoleParams identifies a single hole; used by the write path where every
// field is required.
type HoleParams struct {
	User       string
	Tournament string
	Hole       uint8
}
