package mastery

// Label returns the human-readable level name.
func (l Level) Label() string {
	switch l {
	case LevelStarted:
		return "In progress"
	case LevelCovered:
		return "Seen all"
	case LevelCompetent:
		return "Competent"
	case LevelMastered:
		return "Mastered"
	default:
		return "Not started"
	}
}

// Color returns the level's badge color as a hex string.
func (l Level) Color() string {
	switch l {
	case LevelStarted:
		return "#3498db"
	case LevelCovered:
		return "#9b59b6"
	case LevelCompetent:
		return "#f39c12"
	case LevelMastered:
		return "#27ae60"
	default:
		return "#95a5a6"
	}
}

// Icon returns the level's badge glyph. LevelNone has none.
func (l Level) Icon() string {
	switch l {
	case LevelStarted:
		return "📘"
	case LevelCovered:
		return "📋"
	case LevelCompetent:
		return "🎯"
	case LevelMastered:
		return "🏆"
	default:
		return ""
	}
}
