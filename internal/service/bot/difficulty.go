package bot

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps a case-insensitive name onto a difficulty. Anything
// unrecognised, including "", is medium, which searches three plies.
func ParseDifficulty(difficulty string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Depth is the search horizon used for the difficulty.
func (d Difficulty) Depth() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return DefaultDepth
	default:
		return 3
	}
}

var botNames = map[Difficulty]string{
	DifficultyEasy:   "Alice",
	DifficultyMedium: "Bob",
	DifficultyHard:   "Charles",
}

func (d Difficulty) BotName() string {
	if name, ok := botNames[d]; ok {
		return name
	}
	return "BOT"
}
