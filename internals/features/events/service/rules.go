package service

import (
	"fmt"
	"strings"

	"chilume_backend/internals/features/events/model"
)

var generalRules = []string{
	"All participants must report 30 minutes before the event starts.",
	"Participants must bring their college ID card.",
	"The decision of judges/referees will be final.",
	"No arguments or fights will be tolerated.",
	"Event-specific rules will be explained before the start.",
}

type ruleSection struct {
	keyword string
	title   string
	lines   []string
}

var specificRules = []ruleSection{
	{"chess", "Chess Specific Rules", []string{
		"Standard FIDE rules apply",
		"Time control: 15 minutes per player",
		"Touch-move rule is enforced",
		"Illegal moves result in immediate loss",
	}},
	{"badminton", "Badminton Specific Rules", []string{
		"BWF rules will be followed",
		"Matches will be best of 3 sets",
		"Each set is played to 21 points",
		"Players must bring their own racquets",
	}},
	{"dance", "Dance Competition Rules", []string{
		"Performance time limit: 5 minutes",
		"Teams can have 5-10 members",
		"Props are allowed but must be approved",
		"Vulgarity in any form will lead to disqualification",
	}},
}

// RulesFor returns the stored rules, or a markdown rule sheet built from the
// general rules plus sections keyed on the event name.
func RulesFor(ev *model.EventModel) string {
	if ev.EventRules != nil && strings.TrimSpace(*ev.EventRules) != "" {
		return *ev.EventRules
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Rules for %s\n\n", ev.EventName)
	for i, r := range generalRules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	name := strings.ToLower(ev.EventName)
	for _, s := range specificRules {
		if !strings.Contains(name, s.keyword) {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n", s.title)
		for _, l := range s.lines {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	}
	return b.String()
}
