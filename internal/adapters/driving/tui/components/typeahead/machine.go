package typeahead

// State is the visible state of a typeahead.
type State int

const (
	// Closed shows the input only.
	Closed State = iota
	// OpenIdle shows the option list.
	OpenIdle
	// OpenLoading shows the loading placeholder.
	OpenLoading
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case OpenIdle:
		return "open-idle"
	case OpenLoading:
		return "open-loading"
	default:
		return "unknown"
	}
}

// Config holds the caller-supplied properties of a typeahead.
type Config struct {
	Options      []Option
	EmptyMessage string
	// Value, when set, is the selection at mount.
	Value         *Option
	OnValueChange func(Option)
	IsLoading     bool
	Disabled      bool
	Placeholder   string
}

// Machine holds the selection state of one typeahead. Every transition is
// synchronous; the deferred blur after a selection is requested through
// Select's return value and delivered later through DeferredBlur.
type Machine struct {
	options       []Option
	onValueChange func(Option)

	focused     bool
	open        bool
	inputText   string
	selected    Option
	hasSelected bool
	loading     bool
	disabled    bool
	blurPending bool
}

// NewMachine creates a machine from cfg. Without a Value the selection and
// the input text start empty.
func NewMachine(cfg Config) *Machine {
	m := &Machine{
		options:       cfg.Options,
		onValueChange: cfg.OnValueChange,
		loading:       cfg.IsLoading,
		disabled:      cfg.Disabled,
	}
	if cfg.Value != nil {
		m.selected = *cfg.Value
		m.hasSelected = true
		m.inputText = cfg.Value.Label
	}
	return m
}

// State reports Closed, OpenIdle or OpenLoading.
func (m *Machine) State() State {
	switch {
	case !m.open:
		return Closed
	case m.loading:
		return OpenLoading
	default:
		return OpenIdle
	}
}

// Focus opens the list. A disabled typeahead cannot take focus.
func (m *Machine) Focus() bool {
	if m.disabled {
		return false
	}
	m.focused = true
	m.open = true
	return true
}

// Blur closes the list and resets the input text to the selected label,
// or to empty when nothing is selected. Blurring twice is harmless.
func (m *Machine) Blur() {
	m.focused = false
	m.open = false
	if m.hasSelected {
		m.inputText = m.selected.Label
	} else {
		m.inputText = ""
	}
}

// Escape defocuses; the blur transition does the closing.
func (m *Machine) Escape() {
	m.Blur()
}

// KeyPressed records a keystroke. A keystroke on a typeahead that is not
// open opens it first.
func (m *Machine) KeyPressed() {
	if m.disabled {
		return
	}
	if !m.open {
		m.focused = true
		m.open = true
	}
}

// SetInputText records an edit of the input text. Edits are dropped while
// options are loading; the return value reports whether it was applied.
func (m *Machine) SetInputText(text string) bool {
	if m.loading || m.disabled {
		return false
	}
	m.inputText = text
	return true
}

// Enter commits the option whose label equals the input text exactly.
// Empty text or no exact match leaves everything unchanged.
func (m *Machine) Enter() (Option, bool) {
	if m.inputText == "" {
		return Option{}, false
	}
	opt, ok := findByLabel(m.options, m.inputText)
	if !ok {
		return Option{}, false
	}
	m.selected = opt
	m.hasSelected = true
	m.notify(opt)
	return opt, true
}

// Select commits opt: the input text becomes its label, the selection is
// replaced and the change callback fires. The caller must schedule
// DeferredBlur for the next event-loop turn when scheduleBlur is true;
// while one blur is already pending no second one is requested.
func (m *Machine) Select(opt Option) (scheduleBlur bool) {
	m.inputText = opt.Label
	m.selected = opt
	m.hasSelected = true
	m.notify(opt)
	if m.blurPending {
		return false
	}
	m.blurPending = true
	return true
}

// DeferredBlur completes the blur scheduled by Select.
func (m *Machine) DeferredBlur() {
	if !m.blurPending {
		return
	}
	m.blurPending = false
	m.Blur()
}

func (m *Machine) notify(opt Option) {
	if m.onValueChange != nil {
		m.onValueChange(opt)
	}
}

// SetOptions replaces the option list.
func (m *Machine) SetOptions(options []Option) {
	m.options = options
}

// SetLoading sets whether options are being loaded.
func (m *Machine) SetLoading(loading bool) {
	m.loading = loading
}

// SetDisabled enables or disables the typeahead. Disabling closes it.
func (m *Machine) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled && m.open {
		m.Blur()
	}
}

// SetValue replaces the selection without firing the change callback, as
// when the caller remounts the control with a new value. A nil value clears
// the selection.
func (m *Machine) SetValue(value *Option) {
	if value == nil {
		m.selected = Option{}
		m.hasSelected = false
	} else {
		m.selected = *value
		m.hasSelected = true
	}
	if !m.focused {
		m.Blur()
	}
}

// Options returns the option list.
func (m *Machine) Options() []Option { return m.options }

// InputText returns the current input text.
func (m *Machine) InputText() string { return m.inputText }

// Selected returns the selection, if any.
func (m *Machine) Selected() (Option, bool) { return m.selected, m.hasSelected }

// IsOpen reports whether the list is shown.
func (m *Machine) IsOpen() bool { return m.open }

// IsFocused reports whether the input has focus.
func (m *Machine) IsFocused() bool { return m.focused }

// IsLoading reports whether options are being loaded.
func (m *Machine) IsLoading() bool { return m.loading }

// IsDisabled reports whether the typeahead is disabled.
func (m *Machine) IsDisabled() bool { return m.disabled }

// BlurPending reports whether a deferred blur is outstanding.
func (m *Machine) BlurPending() bool { return m.blurPending }
