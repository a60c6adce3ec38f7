package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Heuristics is the full set of tunable tables and thresholds the
// parsing, classification, and reconciliation heuristics run on.
// Loaded once at startup and treated as immutable; components receive
// it by injection rather than reading package globals.
type Heuristics struct {
	// Normalization
	StopWords []string `yaml:"stop_words"`

	// Header parsing
	Delimiters     []string `yaml:"delimiters"`
	MaxHeaderLines int      `yaml:"max_header_lines"`
	GarbagePhrases []string `yaml:"garbage_phrases"` // boilerplate dropped from header parts

	// School canonicalization
	SchoolAliases map[string]string `yaml:"school_aliases"`

	// Sport classification
	PoisonPills         []string            `yaml:"poison_pills"`
	PoisonPillWindow    int                 `yaml:"poison_pill_window"`
	FootballKeywords    []string            `yaml:"football_keywords"`
	OtherSports         map[string][]string `yaml:"other_sports"`
	OtherSportThreshold int                 `yaml:"other_sport_threshold"` // score needed to reject as that sport
	FootballMargin      int                 `yaml:"football_margin"`       // other must beat football by more than this
	LightweightLbs      int                 `yaml:"lightweight_lbs"`       // sub-weight bios with no football signal are rejected

	// Role classification
	StaffTitleKeywords     []string `yaml:"staff_title_keywords"`
	PlayerPositionKeywords []string `yaml:"player_position_keywords"`
	PlayerBioMarkers       []string `yaml:"player_bio_markers"`
	ClassYearWords         []string `yaml:"class_year_words"`

	// Reconciliation
	GarbageNames []string `yaml:"garbage_names"` // parsed names that mark a row as chrome
	Placeholders []string `yaml:"placeholders"`  // values treated as blank when gap-filling
	MaxNameLen   int      `yaml:"max_name_len"`

	// Snippets
	GoldContextTerms []string `yaml:"gold_context_terms"`
	SnippetRadius    int      `yaml:"snippet_radius"`

	// Title cleanup
	TitleAbbreviations map[string]string `yaml:"title_abbreviations"`
	GenericTitles      []string          `yaml:"generic_titles"` // titles vague enough to replace from the bio
	RoleHunts          []RoleHunt        `yaml:"role_hunts"`
	RoleHuntWindow     int               `yaml:"role_hunt_window"`
}

// RoleHunt maps a bio phrase to the concrete title it implies. Hunts
// run in order; the first phrase found wins.
type RoleHunt struct {
	Contains string `yaml:"contains"`
	Title    string `yaml:"title"`
}

// DefaultHeuristics returns the compiled-in tables, tuned against the
// scraped corpus this tool was built for.
func DefaultHeuristics() *Heuristics {
	return &Heuristics{
		StopWords: []string{
			"university", "univ", "college", "state", "the", "of",
			"athletics", "inst", "tech", "a&m",
		},

		Delimiters:     []string{" - ", " | ", " : "},
		MaxHeaderLines: 12,
		GarbagePhrases: []string{
			"official athletics website", "skip to main content",
			"source:", "staff directory", "composite",
		},

		SchoolAliases: map[string]string{
			"ASU":                   "Arizona State",
			"FSU":                   "Florida State",
			"LSU":                   "Louisiana State",
			"Ole":                   "Ole Miss",
			"Mississippi":           "Ole Miss",
			"Boston":                "Boston College",
			"Miami":                 "Miami (FL)",
			"University of Auburn":  "Auburn",
			"Central Methodist":     "Central Methodist University",
			"The Ohio State":        "Ohio State",
		},

		PoisonPills: []string{
			"women's flag", "flag football",
		},
		PoisonPillWindow: 1000,
		FootballKeywords: []string{
			"football", "gridiron", "quarterback", "linebacker",
			"touchdown", "offensive line", "defensive line",
			"special teams", "bowl game",
		},
		OtherSports: map[string][]string{
			"Volleyball":    {"volleyball", "setter", "libero", "outside hitter"},
			"Basketball":    {"basketball", "point guard", "three-pointer", "rebounds"},
			"Baseball":      {"baseball", "pitcher", "shortstop", "home run", "innings"},
			"Softball":      {"softball", "fastpitch"},
			"Soccer":        {"soccer", "midfielder", "goalkeeper", "striker"},
			"Tennis":        {"tennis", "singles", "doubles", "baseline"},
			"Golf":          {"golf", "fairway", "birdie", "putting"},
			"Swimming":      {"swimming", "freestyle", "butterfly", "backstroke"},
			"Lacrosse":      {"lacrosse", "faceoff", "crease"},
			"Hockey":        {"hockey", "puck", "power play"},
			"Wrestling":     {"wrestling", "takedown", "pin"},
			"Gymnastics":    {"gymnastics", "vault", "balance beam"},
			"Track & Field": {"track and field", "sprinter", "hurdles", "javelin"},
			"Rowing":        {"rowing", "crew", "regatta", "coxswain"},
			"Cheerleading":  {"cheerleading", "cheer squad", "spirit squad"},
		},
		OtherSportThreshold: 2,
		FootballMargin:      1,
		LightweightLbs:      160,

		StaffTitleKeywords: []string{
			"coach", "coordinator", "director", "analyst", "assistant",
			"specialist", "trainer", "recruiting", "personnel",
			"strength", "conditioning", "graduate assistant", "intern",
			"manager", "staff", "operations", "scout", "chief",
			"video", "equipment", "quality control",
		},
		PlayerPositionKeywords: []string{
			"quarterback", "running back", "wide receiver", "tight end",
			"offensive line", "defensive line", "linebacker",
			"defensive back", "cornerback", "safety", "kicker", "punter",
			"long snapper",
			"qb", "rb", "wr", "te", "ol", "dl", "lb", "db", "cb", "fs", "ss",
		},
		PlayerBioMarkers: []string{
			"class:", "height:", "weight:", "hometown:", "high school:", "lbs",
		},
		ClassYearWords: []string{
			"freshman", "sophomore", "junior", "senior", "redshirt",
		},

		GarbageNames: []string{
			"skip to", "main content", "print=true", "schedule",
			"football roster", "statistics", "contact ticket office",
			"gameday app", "ticket office", "roster", "staff directory",
			"composite", "view full", "2024", "2025", "2026",
		},
		Placeholders: []string{"", "unknown", "staff", "x", "n/a", "-", "nan"},
		MaxNameLen:   40,

		GoldContextTerms: []string{
			"native of", "hometown", "born in", "raised in",
			"attended", "graduate of", "graduated from", "high school",
			"coached at", "recruiting",
		},
		SnippetRadius: 70,

		TitleAbbreviations: map[string]string{
			"LB": "Linebackers", "DB": "Defensive Backs", "WR": "Wide Receivers",
			"QB": "Quarterbacks", "RB": "Running Backs", "DL": "Defensive Line",
			"OL": "Offensive Line", "TE": "Tight Ends", "ST": "Special Teams",
			"COORD": "Coordinator", "ASST": "Assistant", "DIR": "Director",
			"HC": "Head Coach", "ASSOC": "Associate", "GM": "General Manager",
		},
		GenericTitles: []string{
			"football coach", "coach", "staff", "assistant coach",
			"football staff", "bio", "profile", "football", "unknown",
		},
		RoleHunts: []RoleHunt{
			{"title: tight ends coach", "Tight Ends Coach"},
			{"title: linebackers coach", "Linebackers Coach"},
			{"title: quarterbacks coach", "Quarterbacks Coach"},
			{"head coach", "Head Coach"},
			{"defensive coordinator", "Defensive Coordinator"},
			{"offensive coordinator", "Offensive Coordinator"},
			{"special teams coordinator", "Special Teams Coordinator"},
			{"linebackers", "Linebackers Coach"},
			{"quarterbacks", "Quarterbacks Coach"},
			{"running backs", "Running Backs Coach"},
			{"wide receivers", "Wide Receivers Coach"},
			{"defensive line", "Defensive Line Coach"},
			{"offensive line", "Offensive Line Coach"},
			{"tight ends", "Tight Ends Coach"},
			{"defensive backs", "Defensive Backs Coach"},
		},
		RoleHuntWindow: 3000,
	}
}

// LoadHeuristics reads a YAML overrides file on top of the defaults.
// An empty path returns the defaults unchanged; a missing or unreadable
// file is an error so silent misconfiguration can't skew a search.
func LoadHeuristics(path string) (*Heuristics, error) {
	h := DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read heuristics %s", path)
	}
	if err := yaml.Unmarshal(data, h); err != nil {
		return nil, eris.Wrapf(err, "config: parse heuristics %s", path)
	}
	return h, nil
}
