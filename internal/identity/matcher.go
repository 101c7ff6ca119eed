package identity

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/rotocoach/internal/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultThreshold is the minimum name similarity accepted as a match.
const DefaultThreshold = 0.7

var suffixes = map[string]bool{"jr": true, "sr": true, "ii": true, "iii": true, "iv": true}

// NormalizeName folds case, accents, punctuation and generational suffixes so
// "Luka Dončić" and "luka doncic" compare equal.
func NormalizeName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var sb strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			sb.WriteRune(' ')
		}
	}

	words := strings.Fields(sb.String())
	for len(words) > 1 && suffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// Similarity is one minus the Levenshtein distance over the longer length.
func Similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// BestMatch returns the index of the candidate closest to query, or -1 when
// nothing clears threshold.
func BestMatch(query string, candidates []string, threshold float64) (int, float64) {
	q := NormalizeName(query)
	best, bestScore := -1, 0.0
	for i, c := range candidates {
		score := Similarity(q, NormalizeName(c))
		if score >= threshold && score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}

type Matcher struct {
	Threshold float64

	byExternal map[string]string
	byName     map[string]string
	ids        []string
	names      []string
	// unlinked names projections without an external id, tracked only when
	// the set carries external ids at all.
	unlinked []string
}

func NewMatcher(projections []models.PlayerProjection) *Matcher {
	m := &Matcher{
		Threshold:  DefaultThreshold,
		byExternal: make(map[string]string),
		byName:     make(map[string]string),
	}
	for _, p := range projections {
		if p.ExternalID != "" {
			m.byExternal[p.ExternalID] = p.ID
		}
		n := NormalizeName(p.Name)
		if _, dup := m.byName[n]; !dup {
			m.byName[n] = p.ID
		}
		m.ids = append(m.ids, p.ID)
		m.names = append(m.names, n)
	}
	if len(m.byExternal) > 0 {
		for _, p := range projections {
			if p.ExternalID == "" {
				m.unlinked = append(m.unlinked, p.Name)
			}
		}
	}
	return m
}

// Match resolves one roster entry to a projection id. External ids win, then
// exact normalized names, then the closest fuzzy name.
func (m *Matcher) Match(name, externalID string) (id string, score float64, ok bool) {
	if externalID != "" {
		if id, ok := m.byExternal[externalID]; ok {
			return id, 1, true
		}
	}
	n := NormalizeName(name)
	if id, ok := m.byName[n]; ok {
		return id, 1, true
	}

	best, bestScore := -1, 0.0
	for i, candidate := range m.names {
		s := Similarity(n, candidate)
		if s >= m.Threshold && s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return m.ids[best], bestScore, true
}

type FuzzyMatch struct {
	Entry        models.RosterEntry
	ProjectionID string
	Score        float64
}

// Mapping is the outcome of resolving a league's rosters against the
// projection set.
type Mapping struct {
	Roster   models.Roster
	Unmapped []models.RosterEntry
	Fuzzy    []FuzzyMatch
	// Unlinked projections have no external id and can only be matched by
	// name.
	Unlinked []string
}

// Warnings renders one line per unmapped entry, fuzzy match and unlinked
// projection.
func (m Mapping) Warnings() []string {
	var out []string
	for _, e := range m.Unmapped {
		out = append(out, "no projection for "+e.Name)
	}
	for _, name := range m.Unlinked {
		out = append(out, "no external id for projection "+name)
	}
	for _, f := range m.Fuzzy {
		out = append(out, "matched "+f.Entry.Name+" to "+f.ProjectionID+" by name similarity")
	}
	return out
}

// MapRoster builds the engine roster from league roster entries. A projection
// claimed by two entries keeps the first claim.
func (m *Matcher) MapRoster(entries []models.RosterEntry) Mapping {
	out := Mapping{Roster: models.Roster{}, Unlinked: append([]string(nil), m.unlinked...)}
	if len(out.Unlinked) > 0 {
		slog.Warn("Projections without external id", "count", len(out.Unlinked))
	}
	for _, e := range entries {
		id, score, ok := m.Match(e.Name, e.ExternalID)
		if !ok {
			slog.Warn("Unmapped roster entry", "player", e.Name, "team_id", e.TeamID)
			out.Unmapped = append(out.Unmapped, e)
			continue
		}
		if prev, taken := out.Roster[id]; taken {
			slog.Warn("Projection already rostered", "player", e.Name, "projection", id, "team_id", prev)
			out.Unmapped = append(out.Unmapped, e)
			continue
		}
		if score < 1 {
			slog.Info("Fuzzy roster match", "player", e.Name, "projection", id, "score", score)
			out.Fuzzy = append(out.Fuzzy, FuzzyMatch{Entry: e, ProjectionID: id, Score: score})
		}
		out.Roster[id] = e.TeamID
	}
	return out
}
