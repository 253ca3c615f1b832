package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/quiz-api/internal/quiz"
)

func main() {
	file := flag.String("file", "configs/quizzes.yaml", "Quiz seed file to validate")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to open seed file")
	}
	defer f.Close()

	seed, err := quiz.ParseSeed(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to parse seed file")
	}

	failed := 0
	for i, in := range seed.Quizzes {
		if err := in.Validate(); err != nil {
			failed++
			log.Error().Err(err).Int("index", i).Str("title", in.Title).Msg("invalid quiz")
			continue
		}
		log.Info().Int("index", i).Str("title", in.Title).Int("questions", len(in.Questions)).Msg("quiz ok")
	}

	if failed > 0 {
		log.Error().Int("invalid", failed).Int("total", len(seed.Quizzes)).Msg("seed file rejected")
		os.Exit(1)
	}
	log.Info().Int("total", len(seed.Quizzes)).Msg("seed file valid")
}
