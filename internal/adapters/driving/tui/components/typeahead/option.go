// Package typeahead provides an autocomplete combobox for picking one entity
// from a list of options.
//
// The behaviour lives in Machine, a plain state machine with no terminal
// dependencies. Model wraps it as a Bubble Tea component with a text input,
// a loading spinner, fuzzy-filtered option rows and mouse support.
package typeahead

// Option is one selectable entry. Value is unique within an option list;
// Label is what the user sees and types against.
type Option struct {
	Value string
	Label string
	ID    string
	// Extra carries caller data, such as the owning user of a vehicle.
	Extra map[string]string
}

// findByLabel returns the first option whose label equals label exactly.
func findByLabel(options []Option, label string) (Option, bool) {
	for _, o := range options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}
