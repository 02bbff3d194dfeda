package filter

import (
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/pusharr/pusher"
)

// compiled programs are shared between Compile calls
var programCache = newLRUCache(64)

// ChannelEntry is one channel of a listing, flattened for filtering and display
type ChannelEntry struct {
	Name              string
	UserCount         int
	SubscriptionCount int
}

// Entries flattens a channel listing into entries sorted by name
func Entries(channels map[string]pusher.ChannelAttributes) []ChannelEntry {
	entries := make([]ChannelEntry, 0, len(channels))
	for name, attrs := range channels {
		entries = append(entries, ChannelEntry{
			Name:              name,
			UserCount:         attrs.UserCount,
			SubscriptionCount: attrs.SubscriptionCount,
		})
	}
	slices.SortFunc(entries, func(a, b ChannelEntry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}

// ChannelFilter is a compiled boolean expression over channel attributes
type ChannelFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression such as `IsPresence and UserCount > 10`
func Compile(expression string) (*ChannelFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if cached, ok := programCache.Get(expression); ok {
		return cached.(*ChannelFilter), nil
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(ChannelEntry{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	f := &ChannelFilter{expression: expression, program: program}
	programCache.Put(expression, f)
	return f, nil
}

// Expression returns the original expression
func (f *ChannelFilter) Expression() string {
	return f.expression
}

// Match evaluates the filter against one channel.
// Evaluation errors count as no match.
func (f *ChannelFilter) Match(ch ChannelEntry) bool {
	result, err := expr.Run(f.program, environment(ch))
	if err != nil {
		return false
	}
	// AsBool() guarantees the type
	return result.(bool)
}

// Apply returns the matching channels of a listing, sorted by name
func (f *ChannelFilter) Apply(channels map[string]pusher.ChannelAttributes) []ChannelEntry {
	var matches []ChannelEntry
	for _, entry := range Entries(channels) {
		if f.Match(entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// environment exposes the channel fields and case-insensitive string helpers.
// hasPrefix and hasSuffix shadow the expr builtins of the same name.
func environment(ch ChannelEntry) map[string]any {
	return map[string]any{
		"Name":              ch.Name,
		"UserCount":         ch.UserCount,
		"SubscriptionCount": ch.SubscriptionCount,
		"IsPresence":        pusher.IsPresenceChannel(ch.Name),
		"IsPrivate":         pusher.IsPrivateChannel(ch.Name),

		"includes": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"hasPrefix": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"hasSuffix": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
