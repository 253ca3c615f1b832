package quiz

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML document accepted by LoadSeed.
//
//	quizzes:
//	  - title: Sample Quiz
//	    questions:
//	      - question: What is 2+2?
//	        options: ["3", "4", "5"]
//	        correctAnswer: "4"
type SeedFile struct {
	Quizzes []NewQuiz `yaml:"quizzes"`
}

// ParseSeed decodes a seed document.
func ParseSeed(r io.Reader) (SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return SeedFile{}, nil
		}
		return SeedFile{}, fmt.Errorf("decode seed: %w", err)
	}
	return seed, nil
}

// LoadSeed creates every quiz listed in the YAML file at path.
// It stops at the first invalid quiz and returns the quizzes created so far.
func LoadSeed(ctx context.Context, store *Store, path string) ([]Quiz, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	seed, err := ParseSeed(f)
	if err != nil {
		return nil, err
	}

	created := make([]Quiz, 0, len(seed.Quizzes))
	for i, in := range seed.Quizzes {
		qz, err := store.Create(ctx, in)
		if err != nil {
			return created, fmt.Errorf("seed quiz %d (%q): %w", i, in.Title, err)
		}
		created = append(created, qz)
	}
	return created, nil
}
