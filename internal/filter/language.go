package filter

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
)

// LanguageFilter keeps titles that have at least one aka in a language.
// The aka columns are joined onto the result; a title with several
// matching akas appears once, with its first matching aka.
type LanguageFilter struct {
	akas *frame.Frame
	lang string
}

// NewLanguageFilter creates a language filter over the given akas frame.
// lang must be an ISO 639 code as used by title.akas (e.g. "en", "ja").
func NewLanguageFilter(akas *frame.Frame, lang string) (*LanguageFilter, error) {
	code, err := ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	return &LanguageFilter{akas: akas, lang: code}, nil
}

// Name returns the filter description.
func (f *LanguageFilter) Name() string {
	return "language = " + f.lang
}

// Apply joins titles with the matching akas and deduplicates on tconst.
func (f *LanguageFilter) Apply(_ context.Context, titles *frame.Frame) (*frame.Frame, error) {
	if err := dataset.RequireColumns(f.akas, "title.akas", dataset.ColTitleID, dataset.ColLanguage); err != nil {
		return nil, err
	}

	inLang := f.akas.Filter(func(r frame.Row) bool {
		return r.Get(dataset.ColLanguage) == f.lang
	})

	joined := frame.Join(titles, inLang, dataset.ColTconst, dataset.ColTitleID, frame.Inner)

	return joined.DropDuplicates(dataset.ColTconst), nil
}

// ParseLanguage validates a language code and returns it in the
// lower-case form used by title.akas.
func ParseLanguage(lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "", fmt.Errorf("language must not be empty")
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("invalid language %q: %w", lang, err)
	}

	base, conf := tag.Base()
	if conf == language.No {
		return "", fmt.Errorf("invalid language %q: no base language", lang)
	}

	if tag.String() != base.String() {
		return "", fmt.Errorf("invalid language %q: expected a bare language code such as %q", lang, base.String())
	}

	return strings.ToLower(lang), nil
}
