// Package football holds the record types served by the football data API and
// the tolerant decoders that extract them from raw response bodies.
package football

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TeamRef is a side of a match. The live feed sends a bare team name, the
// fixtures feed sends an object; both decode into TeamRef.
type TeamRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Crest string `json:"crest"`
}

// UnmarshalJSON accepts a string or an object. Anything else, or a field of the
// wrong type, leaves the affected fields blank rather than failing the record.
func (t *TeamRef) UnmarshalJSON(data []byte) error {
	*t = TeamRef{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var name string
		if json.Unmarshal(data, &name) == nil {
			t.Name = name
		}
	case '{':
		type plain TeamRef
		var p plain
		_ = json.Unmarshal(data, &p)
		*t = TeamRef(p)
	}
	return nil
}

// Area is the country or region a competition belongs to.
type Area struct {
	Name string `json:"name"`
}

// Competition is a league or tournament.
type Competition struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Area   Area   `json:"area"`
	Emblem string `json:"emblem"`
}

// Score is a display score. It decodes from "2 - 1", from {"home":2,"away":1}
// or from {"fullTime":{"home":2,"away":1}}. Unknown shapes decode to "".
type Score string

// UnmarshalJSON never fails; a score that cannot be understood is blank.
func (s *Score) UnmarshalJSON(data []byte) error {
	*s = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var str string
		if json.Unmarshal(data, &str) == nil {
			*s = Score(str)
		}
	case '{':
		var obj struct {
			Home     *int `json:"home"`
			Away     *int `json:"away"`
			FullTime *struct {
				Home *int `json:"home"`
				Away *int `json:"away"`
			} `json:"fullTime"`
		}
		if json.Unmarshal(data, &obj) != nil {
			return nil
		}
		home, away := obj.Home, obj.Away
		if obj.FullTime != nil && (obj.FullTime.Home != nil || obj.FullTime.Away != nil) {
			home, away = obj.FullTime.Home, obj.FullTime.Away
		}
		if home != nil && away != nil {
			*s = Score(fmt.Sprintf("%d - %d", *home, *away))
		}
	}
	return nil
}

// Match is a fixture from either the live or the upcoming feed.
type Match struct {
	ID          int
	Tournament  string // live feed: competition name as a string
	Competition Competition
	HomeTeam    TeamRef
	AwayTeam    TeamRef
	Score       Score
	Status      string
	Kickoff     string // ISO-8601; startTime (live) or utcDate (upcoming)
	Stage       string
	Group       string
}

type matchWire struct {
	ID          flexInt      `json:"id"`
	Tournament  string       `json:"tournament"`
	Competition *Competition `json:"competition"`
	HomeTeam    TeamRef      `json:"homeTeam"`
	AwayTeam    TeamRef      `json:"awayTeam"`
	Score       Score        `json:"score"`
	Status      string       `json:"status"`
	StartTime   string       `json:"startTime"`
	UTCDate     string       `json:"utcDate"`
	Stage       string       `json:"stage"`
	Group       string       `json:"group"`
}

// UnmarshalJSON merges the two upstream match shapes. Fields of the wrong type
// are left blank; only a body that is not an object is rejected.
func (m *Match) UnmarshalJSON(data []byte) error {
	var w matchWire
	if err := json.Unmarshal(data, &w); err != nil && !isTypeError(err) {
		return err
	}
	*m = Match{
		ID:         int(w.ID),
		Tournament: w.Tournament,
		HomeTeam:   w.HomeTeam,
		AwayTeam:   w.AwayTeam,
		Score:      w.Score,
		Status:     w.Status,
		Kickoff:    w.StartTime,
		Stage:      w.Stage,
		Group:      w.Group,
	}
	if m.Kickoff == "" {
		m.Kickoff = w.UTCDate
	}
	if w.Competition != nil {
		m.Competition = *w.Competition
	}
	return nil
}

// CompetitionName prefers the structured competition, then the tournament string.
func (m Match) CompetitionName() string {
	if m.Competition.Name != "" {
		return m.Competition.Name
	}
	return m.Tournament
}

// Key identifies the match for list rendering; it falls back to the row index
// when the upstream id is missing.
func (m Match) Key(index int) string {
	if m.ID != 0 {
		return strconv.Itoa(m.ID)
	}
	return "#" + strconv.Itoa(index)
}

// Team is a club participating in a competition.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

// StandingRow is one line of a league table.
type StandingRow struct {
	Position       int     `json:"position"`
	Team           TeamRef `json:"team"`
	PlayedGames    int     `json:"playedGames"`
	Points         int     `json:"points"`
	Won            int     `json:"won"`
	Draw           int     `json:"draw"`
	Lost           int     `json:"lost"`
	GoalDifference int     `json:"goalDifference"`
}

// flexInt accepts a number or a numeric string; anything else is 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = 0
	var s string
	if json.Unmarshal(data, &s) == nil {
		if n, err := strconv.Atoi(s); err == nil {
			*f = flexInt(n)
		}
		return nil
	}
	var n json.Number
	if json.Unmarshal(data, &n) == nil {
		if i, err := n.Int64(); err == nil {
			*f = flexInt(i)
		}
	}
	return nil
}
