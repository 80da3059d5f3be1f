package workflow

import (
	"fmt"
	"regexp"

	"cloudmon/internal/config"
)

// AppUnknown is the fallback application name when a workflow's unit matches
// no configured pattern or the execution carries no input.
const AppUnknown = "unknown"

// Rule maps a unit pattern to an application name.
type Rule struct {
	Pattern *regexp.Regexp
	App     string
}

// RuleTable is an ordered list of rules, evaluated first match wins.
type RuleTable []Rule

// CompileRules builds a RuleTable from the configured applications,
// preserving config order.
func CompileRules(apps []config.Application) (RuleTable, error) {
	table := make(RuleTable, 0, len(apps))
	for _, a := range apps {
		re, err := regexp.Compile(a.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid application pattern %q: %w", a.Pattern, err)
		}
		table = append(table, Rule{Pattern: re, App: a.Name})
	}
	return table, nil
}

// Resolve returns the application name for a unit, or AppUnknown when no
// rule matches.
func (t RuleTable) Resolve(unit string) string {
	for _, r := range t {
		if r.Pattern.MatchString(unit) {
			return r.App
		}
	}
	return AppUnknown
}
