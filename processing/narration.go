package processing

import (
	"strings"

	"github.com/ameyarj/chima-ads/models"
)

// BuildNarration assembles the voiceover text for a script: hook, problem,
// solution, the first two benefits joined with "and", then the call to action.
// Parts are joined with ". " after stripping any trailing period, so every
// part ends exactly one sentence.
func BuildNarration(script *models.AdScript) string {
	var parts []string

	appendPart := func(s string) {
		s = strings.TrimSuffix(strings.TrimSpace(s), ".")
		if s != "" {
			parts = append(parts, s)
		}
	}

	appendPart(script.Hook)
	appendPart(script.Problem)
	appendPart(script.Solution)

	var benefits []string
	for _, b := range script.Benefits {
		b = strings.TrimSuffix(strings.TrimSpace(b), ".")
		if b == "" {
			continue
		}
		benefits = append(benefits, b)
		if len(benefits) == 2 {
			break
		}
	}
	if len(benefits) > 0 {
		parts = append(parts, strings.Join(benefits, " and "))
	}

	appendPart(script.CallToAction)

	return strings.Join(parts, ". ")
}
