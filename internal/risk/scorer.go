// Package risk turns the free text of a disclosure request into a
// deterministic risk verdict. Scoring is keyword-driven by design: the policy
// scores distinct information categories requested, not verbosity, so
// repeating a keyword does not compound risk.
package risk

import (
	"sort"
	"strings"
)

// Scoring weights and level thresholds. The worked boundary cases (one high
// keyword scores exactly 30 and is Medium; two score 60 and are High) are the
// binding contract; change these and the disclosure gate changes with them.
const (
	WeightHigh   = 30
	WeightMedium = 15
	WeightSafe   = -20

	ThresholdMedium = 30
	ThresholdHigh   = 60

	maxScore = 100
)

// Level buckets a score: [0,30) Safe, [30,60) Medium, [60,100] High.
type Level string

const (
	LevelSafe   Level = "Safe"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// KeywordTier tags a matched keyword with the table it came from.
type KeywordTier string

const (
	KeywordHigh   KeywordTier = "high"
	KeywordMedium KeywordTier = "medium"
)

// Flag is one distinct matched keyword.
type Flag struct {
	Keyword string      `json:"keyword"`
	Tier    KeywordTier `json:"tier"`
}

// Verdict is the scored outcome of analyzing one request text. Verdicts are
// ephemeral: recomputed per request, never cached across calls. Flags carry
// the risky (high and medium) matches; safe-pattern matches lower the score
// but are reported separately so a harmless request shows no flags.
type Verdict struct {
	Score          int      `json:"risk_score"`
	Level          Level    `json:"risk_level"`
	Flags          []Flag   `json:"flags"`
	SafeMatches    []string `json:"safe_matches,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// Stats describes the loaded tables and weights for the risk_stats endpoint.
type Stats struct {
	HighKeywords   int
	MediumKeywords int
	SafePatterns   int
}

// Scorer matches request text against immutable keyword tables. Safe for
// concurrent use; all state is read-only after construction.
type Scorer struct {
	high   []string
	medium []string
	safe   []string
}

// NewScorer returns a scorer over the default keyword tables.
func NewScorer() *Scorer {
	return &Scorer{high: highRiskKeywords, medium: mediumRiskKeywords, safe: safePatterns}
}

// NewScorerWithTables returns a scorer over custom tables. Entries must be
// lowercase. Intended for tests and policy tuning.
func NewScorerWithTables(high, medium, safe []string) *Scorer {
	return &Scorer{high: high, medium: medium, safe: safe}
}

// Score analyzes request text and returns a verdict. Any input, including
// empty text, yields a verdict; there is no failure path.
//
// Raw score = 30 per distinct high match + 15 per distinct medium match - 20
// per distinct safe match, clamped to [0, 100]. Each distinct keyword counts
// at most once regardless of repetition.
func (s *Scorer) Score(text string) Verdict {
	normalized := normalize(text)

	type match struct {
		flag  Flag
		index int
	}
	var matches []match
	raw := 0

	scan := func(table []string, tier KeywordTier, weight int) {
		for _, kw := range table {
			idx := strings.Index(normalized, kw)
			if idx < 0 {
				continue
			}
			raw += weight
			matches = append(matches, match{flag: Flag{Keyword: kw, Tier: tier}, index: idx})
		}
	}
	scan(s.high, KeywordHigh, WeightHigh)
	scan(s.medium, KeywordMedium, WeightMedium)

	var safeMatches []string
	for _, kw := range s.safe {
		if strings.Contains(normalized, kw) {
			raw += WeightSafe
			safeMatches = append(safeMatches, kw)
		}
	}

	// Flags are reported in first-occurrence order in the normalized text;
	// ties (overlapping patterns at the same offset) keep table order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].index < matches[j].index
	})

	score := clamp(raw)
	level := levelFor(score)

	flags := make([]Flag, len(matches))
	for i, m := range matches {
		flags[i] = m.flag
	}

	return Verdict{
		Score:          score,
		Level:          level,
		Flags:          flags,
		SafeMatches:    safeMatches,
		Recommendation: recommendationFor(level),
	}
}

// TableStats reports the loaded table sizes.
func (s *Scorer) TableStats() Stats {
	return Stats{
		HighKeywords:   len(s.high),
		MediumKeywords: len(s.medium),
		SafePatterns:   len(s.safe),
	}
}

// normalize lowercases and collapses all whitespace runs to single spaces.
// Case and spacing differences in otherwise identical requests must produce
// identical verdicts.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// clamp bounds the raw score both directions: safe-heavy requests must not go
// negative and keyword-stuffed requests cap at 100.
func clamp(raw int) int {
	if raw < 0 {
		return 0
	}
	if raw > maxScore {
		return maxScore
	}
	return raw
}

func levelFor(score int) Level {
	switch {
	case score >= ThresholdHigh:
		return LevelHigh
	case score >= ThresholdMedium:
		return LevelMedium
	default:
		return LevelSafe
	}
}

func recommendationFor(level Level) string {
	switch level {
	case LevelHigh:
		return "DENY: this request is highly intrusive and compromises user privacy."
	case LevelMedium:
		return "CAUTION: review carefully and confirm this data is truly necessary."
	default:
		return "APPROVED: this verification respects user privacy."
	}
}
