package puzzle

// WordsPerPuzzle is the number of words in a Connections puzzle.
const WordsPerPuzzle = 16

// GroupsPerPuzzle is the number of groups in a Connections puzzle.
const GroupsPerPuzzle = 4

// WordsPerGroup is the number of words in a single group.
const WordsPerGroup = 4

// Catalog defines the puzzle catalog schema loaded from YAML or JSON.
type Catalog struct {
	Puzzles []Puzzle `json:"puzzles" yaml:"puzzles"`
}

// Puzzle represents a complete Connections puzzle.
type Puzzle struct {
	ID         int      `json:"id" yaml:"id"`
	Date       string   `json:"date" yaml:"date"`
	Difficulty float64  `json:"difficulty" yaml:"difficulty"`
	Words      []string `json:"words" yaml:"words"`
	Groups     []Group  `json:"groups" yaml:"groups"`
}

// Group represents one named group of four related words.
type Group struct {
	Name  string   `json:"name" yaml:"name"`
	Color string   `json:"color" yaml:"color"`
	Words []string `json:"words" yaml:"words"`
}
