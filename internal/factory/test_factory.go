package factory

import (
	"time"

	"github.com/mcoot/wordtiles/internal/dependencies/mocks"
	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/storage/memory"
	"github.com/mcoot/wordtiles/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

// LoadTestDictionary loads a small English dictionary for testing
func (t *TestApp) LoadTestDictionary() {
	t.DictionaryService.LoadWords(model.DefaultLanguage, []string{
		// 2-letter words
		"aa", "ab", "ad", "ae", "ag", "ah", "ai", "al", "am", "an", "ar", "as", "at",
		"aw", "ax", "ay", "ba", "be", "bi", "bo", "by", "de", "do", "ed", "ef", "eh",
		"el", "em", "en", "er", "es", "ex", "fa", "go", "ha", "he", "hi", "ho", "id",
		"if", "in", "is", "it", "jo", "ka", "la", "li", "lo", "ma", "me", "mi", "mo",
		"mu", "my", "na", "ne", "no", "nu", "od", "oe", "of", "oh", "om", "on", "op",
		"or", "os", "ow", "ox", "oy", "pa", "pe", "pi", "qi", "re", "sh", "si", "so",
		"ta", "ti", "to", "uh", "um", "un", "up", "us", "ut", "we", "wo", "xi", "xu",
		"ya", "ye", "yo", "za",
		// Longer words used by tests
		"cat", "cats", "catch", "act", "acts", "tac", "tea", "eat", "ate", "eta",
		"rat", "rate", "tar", "art", "star", "stare", "tears", "rates", "aster",
		"quiz", "zag", "jar", "jet", "box", "fox", "hex", "wax",
	})
}
