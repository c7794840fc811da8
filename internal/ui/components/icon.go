package components

// lessonIcons maps catalog icon names to terminal glyphs.
var lessonIcons = map[string]string{
	"banknote":       "💵",
	"graduation-cap": "🎓",
	"landmark":       "🏛",
	"message-circle": "💬",
	"qr-code":        "▦",
	"smartphone":     "📱",
	"sun":            "☀",
	"user":           "👤",
	"wallet":         "👛",
	"zap":            "⚡",
}

// Icon returns the glyph for a catalog icon name, or a bullet for names
// without one.
func Icon(name string) string {
	if g, ok := lessonIcons[name]; ok {
		return g
	}
	return "•"
}
