// Package classify holds the sport gate and the coach/player role
// rules. Both are pure keyword heuristics over injected tables; they
// never error, they always produce a verdict.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gridiron-labs/roster-scout/internal/config"
)

// Sport verdict values. Anything else is a concrete non-football
// sport name and means the caller drops the record.
const (
	SportFootball  = "Football"
	SportUncertain = "Uncertain"
)

// menuTerminators mark the end of navigation chrome at the top of a
// scraped page; scoring starts after the last one found early in the
// text so menu links don't count as sport signal.
var menuTerminators = []string{
	"close announce block", "skip to main content", "navigation menu",
}

var weightRe = regexp.MustCompile(`(\d{2,3})\s*lbs`)

// SportClassifier decides football vs. other-sport vs. uncertain.
type SportClassifier struct {
	h *config.Heuristics
}

// NewSportClassifier creates a sport classifier over the given tables.
func NewSportClassifier(h *config.Heuristics) *SportClassifier {
	return &SportClassifier{h: h}
}

// Classify scores bio text (title is a cheap extra signal) and
// returns the sport plus whether to keep the record. Poison pills in
// the leading window override all scoring.
func (c *SportClassifier) Classify(bio, title string) (sport string, keep bool) {
	lower := strings.ToLower(bio)

	head := lower
	if len(head) > c.h.PoisonPillWindow {
		head = head[:runeStart(head, c.h.PoisonPillWindow)]
	}
	for _, pill := range c.h.PoisonPills {
		if strings.Contains(head, strings.ToLower(pill)) {
			return "", false
		}
	}

	window := analysisWindow(lower)

	football := countAny(window, c.h.FootballKeywords)
	if strings.Contains(strings.ToLower(title), "football") {
		football++
	}

	bestSport, bestScore := "", 0
	for name, keywords := range c.h.OtherSports {
		if score := countAny(window, keywords); score > bestScore ||
			(score == bestScore && score > 0 && name < bestSport) {
			bestSport, bestScore = name, score
		}
	}

	// Lightweight-build reject: a sub-weight athlete bio with no
	// football signal is some other sport's roster page.
	if football == 0 {
		if m := weightRe.FindStringSubmatch(window); m != nil {
			if w, err := strconv.Atoi(m[1]); err == nil && w < c.h.LightweightLbs {
				return "", false
			}
		}
	}

	switch {
	case football == 0 && bestScore == 0:
		return SportUncertain, true
	case bestScore-football > c.h.FootballMargin:
		if bestScore > c.h.OtherSportThreshold {
			return bestSport, false
		}
		return SportUncertain, true
	default:
		return SportFootball, true
	}
}

// analysisWindow skips leading navigation chrome.
func analysisWindow(lower string) string {
	searchZone := lower
	if len(searchZone) > 1500 {
		searchZone = searchZone[:runeStart(searchZone, 1500)]
	}
	start := 0
	for _, term := range menuTerminators {
		if idx := strings.LastIndex(searchZone, term); idx >= 0 {
			if end := idx + len(term); end > start {
				start = end
			}
		}
	}
	return lower[start:]
}

func countAny(text string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(text, strings.ToLower(kw))
	}
	return total
}
