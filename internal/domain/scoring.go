package domain

import (
	"time"
	"unicode/utf8"

	"incidentTrust/pkg/e"
)

const (
	MinScore = 0
	MaxScore = 100
)

// ScoringPolicy holds the heuristic weights of the verification score.
type ScoringPolicy struct {
	UpvoteWeight int `yaml:"upvote_weight" json:"upvote_weight"`
	UpvoteCap    int `yaml:"upvote_cap" json:"upvote_cap"`
	MediaWeight  int `yaml:"media_weight" json:"media_weight"`
	MediaCap     int `yaml:"media_cap" json:"media_cap"`

	// DescriptionThresholds award DescriptionBonus once per threshold the
	// description length strictly exceeds.
	DescriptionThresholds []int `yaml:"description_thresholds" json:"description_thresholds"`
	DescriptionBonus      int   `yaml:"description_bonus" json:"description_bonus"`

	RegisteredBonus int `yaml:"registered_bonus" json:"registered_bonus"`

	DecayGrace time.Duration `yaml:"decay_grace" json:"decay_grace"`
	DecayCap   int           `yaml:"decay_cap" json:"decay_cap"`
}

func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		UpvoteWeight:          5,
		UpvoteCap:             50,
		MediaWeight:           5,
		MediaCap:              20,
		DescriptionThresholds: []int{100, 500},
		DescriptionBonus:      5,
		RegisteredBonus:       10,
		DecayGrace:            7 * 24 * time.Hour,
		DecayCap:              20,
	}
}

func (p ScoringPolicy) Validate() error {
	for name, v := range map[string]int{
		"upvote_weight":     p.UpvoteWeight,
		"upvote_cap":        p.UpvoteCap,
		"media_weight":      p.MediaWeight,
		"media_cap":         p.MediaCap,
		"description_bonus": p.DescriptionBonus,
		"registered_bonus":  p.RegisteredBonus,
		"decay_cap":         p.DecayCap,
	} {
		if v < 0 {
			return e.Validation("scoring policy %s must not be negative", name)
		}
	}
	for _, t := range p.DescriptionThresholds {
		if t < 0 {
			return e.Validation("scoring policy description threshold must not be negative")
		}
	}
	if p.DecayGrace < 0 {
		return e.Validation("scoring policy decay_grace must not be negative")
	}
	return nil
}

// Score computes the verification score of inc as of now. It is a full
// recomputation from the incident's attributes and has no side effects.
func Score(inc *Incident, p ScoringPolicy, now time.Time) int {
	if inc == nil {
		return MinScore
	}
	score := min(inc.UpvoteCount*p.UpvoteWeight, p.UpvoteCap)
	score += min(len(inc.Media)*p.MediaWeight, p.MediaCap)

	descLen := utf8.RuneCountInString(inc.Description)
	for _, t := range p.DescriptionThresholds {
		if descLen > t {
			score += p.DescriptionBonus
		}
	}

	if inc.Reporter.IsRegistered() {
		score += p.RegisteredBonus
	}

	score -= decay(inc.CreatedAt, now, p)

	return clampScore(score)
}

func decay(createdAt, now time.Time, p ScoringPolicy) int {
	if createdAt.IsZero() {
		return 0
	}
	age := now.Sub(createdAt)
	if age <= p.DecayGrace {
		return 0
	}
	daysPast := int((age - p.DecayGrace) / (24 * time.Hour))
	return min(daysPast, p.DecayCap)
}

func clampScore(v int) int {
	return max(MinScore, min(v, MaxScore))
}
