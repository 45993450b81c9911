package styles

// Toast icons, one per notification type.
var (
	IconSuccess = "✓"
	IconWarning = "⚠"
	IconError   = "✗"
	IconInfo    = "ℹ"
	IconPaused  = "⏸"
)
