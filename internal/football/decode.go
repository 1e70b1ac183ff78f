package football

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/abelbrown/touchline/internal/logging"
)

// The decoders below never fail. A missing, null or mistyped list field is an
// empty list, and a record that is not an object is dropped without affecting
// its siblings.

// DecodeCompetitions extracts {competitions: [...]}.
func DecodeCompetitions(raw json.RawMessage) []Competition {
	return decodeList[Competition](field(raw, "competitions"))
}

// DecodeMatches extracts matches from either a bare array (live feed) or a
// {matches: [...]} wrapper (fixtures feed).
func DecodeMatches(raw json.RawMessage) []Match {
	if isArray(raw) {
		return decodeList[Match](raw)
	}
	return decodeList[Match](field(raw, "matches"))
}

// DecodeStandings extracts the first table of {standings: [{table: [...]}]}.
func DecodeStandings(raw json.RawMessage) []StandingRow {
	groups := decodeList[json.RawMessage](field(raw, "standings"))
	if len(groups) == 0 {
		return []StandingRow{}
	}
	return decodeList[StandingRow](field(groups[0], "table"))
}

// DecodeTeams extracts {teams: [...]}.
func DecodeTeams(raw json.RawMessage) []Team {
	return decodeList[Team](field(raw, "teams"))
}

// field returns obj[name], or nil when raw is not an object or lacks the key.
func field(raw json.RawMessage, name string) json.RawMessage {
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) != nil {
		return nil
	}
	return obj[name]
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// decodeList decodes raw as an array of T, one element at a time.
func decodeList[T any](raw json.RawMessage) []T {
	out := []T{}
	if !isArray(raw) {
		return out
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return out
	}
	for i, elem := range elems {
		if !isObject(elem) {
			logging.Debug("skipping non-object record", "index", i)
			continue
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil && !isTypeError(err) {
			logging.Debug("skipping malformed record", "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// isTypeError reports a field of the wrong type. encoding/json still fills in
// every other field in that case, which is the per-field degradation we want.
func isTypeError(err error) bool {
	var te *json.UnmarshalTypeError
	return errors.As(err, &te)
}
