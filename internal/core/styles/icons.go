package styles

// Glyphs used when rendering tasks.
var (
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
	IconDelete    = "✕"
	IconCursor    = "›"
	IconList      = "☰"
)
