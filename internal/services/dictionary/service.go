package dictionary

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
)

// WordStore persists word lists so other instances can load them without the source file
type WordStore interface {
	GetDictionaryWords(ctx context.Context, language string) ([]string, error)
	SaveDictionaryWords(ctx context.Context, language string, words []string) error
}

// Service provides word validation per language
type Service struct {
	store  WordStore
	logger *slog.Logger

	mu        sync.RWMutex
	languages map[string]map[string]struct{}
}

// New creates a new dictionary Service
func New(store WordStore, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		logger:    logger.With(slog.String("component", "dictionary")),
		languages: make(map[string]map[string]struct{}),
	}
}

// LoadFromStorage loads a language's word list from storage
func (s *Service) LoadFromStorage(ctx context.Context, language string) error {
	words, err := s.store.GetDictionaryWords(ctx, language)
	if err != nil {
		return errors.Wrapf(err, "load %s dictionary from storage", language)
	}
	s.LoadWords(language, words)
	return nil
}

// LoadFromFile loads a word list (one word per line) and saves it to storage
func (s *Service) LoadFromFile(ctx context.Context, language, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s dictionary", language)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "read %s dictionary", language)
	}

	if err := s.store.SaveDictionaryWords(ctx, language, words); err != nil {
		return errors.Wrapf(err, "save %s dictionary", language)
	}

	s.LoadWords(language, words)
	return nil
}

// LoadWords replaces a language's word list (useful for testing)
func (s *Service) LoadWords(language string, words []string) {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		// Store uppercase for case-insensitive matching
		set[strings.ToUpper(word)] = struct{}{}
	}

	s.mu.Lock()
	s.languages[language] = set
	s.mu.Unlock()

	s.logger.Info("dictionary loaded",
		slog.String("language", language),
		slog.Int("word_count", len(set)),
	)
}

// IsLoaded returns whether a word list exists for the language
func (s *Service) IsLoaded(language string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.languages[language]
	return ok
}

// WordCount returns the number of words loaded for the language
func (s *Service) WordCount(language string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.languages[language])
}

// IsValidWord checks if a word exists in the language's dictionary
func (s *Service) IsValidWord(word, language string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.languages[language]
	if !ok {
		return false
	}
	_, ok = set[strings.ToUpper(word)]
	return ok
}

// FindInvalidWords returns the subset of words not present in the language's
// word list, in input order. An unloaded language is an error, not a rejection.
func (s *Service) FindInvalidWords(ctx context.Context, words []string, language string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.languages[language]
	if !ok {
		return nil, errors.Wrapf(model.ErrDictionaryNotLoaded, "language %q", language)
	}

	var invalid []string
	for _, w := range words {
		if _, ok := set[strings.ToUpper(w)]; !ok {
			invalid = append(invalid, w)
		}
	}
	return invalid, nil
}

// ServiceInterface is the dictionary contract used by the rules engine
type ServiceInterface interface {
	FindInvalidWords(ctx context.Context, words []string, language string) ([]string, error)
	IsValidWord(word, language string) bool
	IsLoaded(language string) bool
}

var _ ServiceInterface = (*Service)(nil)
