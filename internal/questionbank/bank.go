package questionbank

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"os"
)

var (
	// ErrEmptyBank is returned when no problems are loaded at all.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrNotFound is returned when no problem matches the requested id.
	ErrNotFound = errors.New("problem not found")
)

// TestCase pairs a driver snippet with its expected trimmed stdout.
type TestCase struct {
	InputCode string `json:"input_code"`
	Expected  string `json:"expected"`
}

// Problem is one coding challenge. Immutable once loaded.
type Problem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StarterCode string     `json:"signature"`
	Difficulty  string     `json:"difficulty"`
	TestCases   []TestCase `json:"test_cases"`
}

// Bank holds the loaded problem set. Read-only after Load, so it is safe to
// share across sessions without locking.
type Bank struct {
	problems []Problem
}

// Load reads a JSON problem file into a Bank. A missing or malformed file
// degrades to an empty bank rather than failing startup.
func Load(path string) *Bank {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("questionbank: %s not readable, starting with empty bank: %v", path, err)
		return &Bank{}
	}
	var problems []Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		log.Printf("questionbank: %s malformed, starting with empty bank: %v", path, err)
		return &Bank{}
	}
	log.Printf("questionbank: loaded %d problems from %s", len(problems), path)
	return &Bank{problems: problems}
}

// Size reports the number of loaded problems.
func (b *Bank) Size() int { return len(b.problems) }

// PickRandom returns a random problem with the given difficulty. When no
// problem matches the filter the whole bank is used as fallback.
func (b *Bank) PickRandom(difficulty string) (*Problem, error) {
	if len(b.problems) == 0 {
		return nil, ErrEmptyBank
	}
	var matching []Problem
	for _, p := range b.problems {
		if p.Difficulty == difficulty {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		matching = b.problems
	}
	p := matching[rand.Intn(len(matching))]
	return &p, nil
}

// Find returns the problem with the exact id.
func (b *Bank) Find(id string) (*Problem, error) {
	for _, p := range b.problems {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
