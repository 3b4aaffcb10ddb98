// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Surfaces
	TokenSurface         ColorToken = "surface"
	TokenSurfaceElevated ColorToken = "surface.elevated"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Accent
	TokenAccent ColorToken = "accent"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusError   ColorToken = "status.error"

	// Buttons
	TokenButtonText               ColorToken = "button.text"
	TokenButtonPrimaryBg          ColorToken = "button.primary.bg"
	TokenButtonPrimaryFocusBg     ColorToken = "button.primary.focus"
	TokenButtonSecondaryBg        ColorToken = "button.secondary.bg"
	TokenButtonSecondaryFocusBg   ColorToken = "button.secondary.focus"
	TokenButtonDestructiveBg      ColorToken = "button.destructive.bg"
	TokenButtonDestructiveFocusBg ColorToken = "button.destructive.focus"
	TokenButtonGhostFocusBg       ColorToken = "button.ghost.focus"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenSurface,
		TokenSurfaceElevated,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenAccent,

		TokenStatusSuccess,
		TokenStatusError,

		TokenButtonText,
		TokenButtonPrimaryBg,
		TokenButtonPrimaryFocusBg,
		TokenButtonSecondaryBg,
		TokenButtonSecondaryFocusBg,
		TokenButtonDestructiveBg,
		TokenButtonDestructiveFocusBg,
		TokenButtonGhostFocusBg,
	}
}
