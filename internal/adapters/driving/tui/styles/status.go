package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fleetdesk/internal/core/domain"
)

// StatusDot is the glyph drawn for a subscription status.
const StatusDot = "●"

// StatusColor maps a subscription status to its indicator colour from the
// default theme. Unknown values return the magenta Invalid colour together
// with domain.ErrUnknownStatus.
func StatusColor(status domain.SubscriptionStatus) (lipgloss.Color, error) {
	return DefaultTheme().StatusColor(status)
}

// StatusColor maps a subscription status to its indicator colour.
func (t *Theme) StatusColor(status domain.SubscriptionStatus) (lipgloss.Color, error) {
	switch status {
	case domain.StatusActive:
		return t.Active, nil
	case domain.StatusTransferred:
		return t.Transferred, nil
	case domain.StatusOverdue:
		return t.Overdue, nil
	case domain.StatusCancelled:
		return t.Cancelled, nil
	default:
		return t.Invalid, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, string(status))
	}
}

// StatusIndicator renders the coloured dot for a status. Unknown statuses
// render in the Invalid colour.
func (s *Styles) StatusIndicator(status domain.SubscriptionStatus) string {
	c, _ := s.theme.StatusColor(status)
	return lipgloss.NewStyle().Foreground(c).Render(StatusDot)
}
