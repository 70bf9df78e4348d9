package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordtiles/internal/model"
	"github.com/mcoot/wordtiles/internal/storage/memory"
	"github.com/mcoot/wordtiles/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestFindInvalidWordsIsCaseInsensitive() {
	s.service.LoadWords("en", []string{"cat", "Catch"})

	invalid, err := s.service.FindInvalidWords(s.ctx, []string{"CAT", "catch", "CATX", "ZZ"}, "en")
	s.Require().NoError(err)
	s.Equal([]string{"CATX", "ZZ"}, invalid)
}

func (s *ServiceSuite) TestFindInvalidWordsAllValid() {
	s.service.LoadWords("en", []string{"at"})

	invalid, err := s.service.FindInvalidWords(s.ctx, []string{"AT"}, "en")
	s.Require().NoError(err)
	s.Empty(invalid)
}

func (s *ServiceSuite) TestFindInvalidWordsUnknownLanguage() {
	_, err := s.service.FindInvalidWords(s.ctx, []string{"AT"}, "nl")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestLanguagesAreIndependent() {
	s.service.LoadWords("en", []string{"cat"})
	s.service.LoadWords("nl", []string{"kat"})

	s.True(s.service.IsValidWord("cat", "en"))
	s.False(s.service.IsValidWord("cat", "nl"))
	s.True(s.service.IsValidWord("KAT", "nl"))
	s.Equal(1, s.service.WordCount("nl"))
}

func (s *ServiceSuite) TestLoadFromFileSavesToStorage() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("cat\n  dog \n\nbird\n"), 0o600))

	s.Require().NoError(s.service.LoadFromFile(s.ctx, "en", path))
	s.Equal(3, s.service.WordCount("en"))

	other := New(s.storage, testutil.NopLogger())
	s.Require().NoError(other.LoadFromStorage(s.ctx, "en"))
	s.True(other.IsValidWord("dog", "en"))
}

func (s *ServiceSuite) TestLoadFromStorageMissing() {
	err := s.service.LoadFromStorage(s.ctx, "en")
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
	s.False(s.service.IsLoaded("en"))
}
