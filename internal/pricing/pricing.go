package pricing

import (
	"regexp"

	"github.com/dmalson/claude-analytics/internal/types"
)

// Tier holds per-million-token prices in USD.
type Tier struct {
	Input         float64 `json:"input"`
	Output        float64 `json:"output"`
	CacheCreation float64 `json:"cache_creation"`
	CacheRead     float64 `json:"cache_read"`
}

// Rule binds a model-name pattern to a price tier. Rules are evaluated
// top-down and the first match wins, so dated model ids such as
// "claude-opus-4-1-20250805" resolve without an exact-string table.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Tier    Tier
}

// Table is an ordered list of pricing rules.
type Table struct {
	rules []Rule
}

// Default returns the built-in Claude API price table.
func Default() *Table {
	return &Table{rules: []Rule{
		{
			Name:    "claude-4-opus",
			Pattern: regexp.MustCompile(`(?i)opus`),
			Tier:    Tier{Input: 15.00, Output: 75.00, CacheCreation: 18.75, CacheRead: 1.50},
		},
		{
			Name:    "claude-4-sonnet",
			Pattern: regexp.MustCompile(`(?i)sonnet`),
			Tier:    Tier{Input: 3.00, Output: 15.00, CacheCreation: 3.75, CacheRead: 0.30},
		},
		{
			Name:    "claude-3.5-haiku",
			Pattern: regexp.MustCompile(`(?i)haiku`),
			Tier:    Tier{Input: 0.80, Output: 4.00, CacheCreation: 1.00, CacheRead: 0.08},
		},
	}}
}

// NewTable builds a table from explicit rules, preserving order.
func NewTable(rules []Rule) *Table {
	return &Table{rules: rules}
}

// Rules returns the table's rules in evaluation order.
func (t *Table) Rules() []Rule {
	return t.rules
}

// Cost applies one tier to a token quad.
func (tier Tier) Cost(quad types.TokenQuad) float64 {
	return float64(quad.Input)/1e6*tier.Input +
		float64(quad.Output)/1e6*tier.Output +
		float64(quad.CacheCreation)/1e6*tier.CacheCreation +
		float64(quad.CacheRead)/1e6*tier.CacheRead
}

// Estimate prices a quad against every rule in the table.
func (t *Table) Estimate(quad types.TokenQuad) map[string]float64 {
	costs := make(map[string]float64, len(t.rules))
	for _, rule := range t.rules {
		costs[rule.Name] = rule.Tier.Cost(quad)
	}
	return costs
}

// Match finds the first rule whose pattern matches the model id.
func (t *Table) Match(model string) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Pattern.MatchString(model) {
			return rule, true
		}
	}
	return Rule{}, false
}

// CostFor prices a quad for a specific model id. Unknown models cost zero
// rather than failing, matching the engine's no-fatal-errors policy.
func (t *Table) CostFor(model string, quad types.TokenQuad) float64 {
	rule, ok := t.Match(model)
	if !ok {
		return 0
	}
	return rule.Tier.Cost(quad)
}
