package mastery

// Level is a module's position on the mastery ladder.
type Level string

const (
	LevelNone      Level = "none"
	LevelStarted   Level = "started"
	LevelCovered   Level = "covered"
	LevelCompetent Level = "competent"
	LevelMastered  Level = "mastered"
)

// Levels returns every level from least to most demanding.
func Levels() []Level {
	return []Level{LevelNone, LevelStarted, LevelCovered, LevelCompetent, LevelMastered}
}

// Rank orders levels; higher is more demanding. Unknown levels rank -1.
func (l Level) Rank() int {
	for i, lv := range Levels() {
		if lv == l {
			return i
		}
	}
	return -1
}

// LevelTransition records a module moving between levels during a session.
type LevelTransition struct {
	ModuleID   string
	ModuleName string
	From       Level
	To         Level
}

// Promoted reports whether the transition moved up the ladder.
func (t LevelTransition) Promoted() bool {
	return t.To.Rank() > t.From.Rank()
}
