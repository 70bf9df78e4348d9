package board

import (
	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/model"
)

// standardLayout is the classic 15x15 premium square layout.
// T = triple word, D = double word, t = triple letter, d = double letter, * = center.
var standardLayout = []string{
	"T..d...T...d..T",
	".D...t...t...D.",
	"..D...d.d...D..",
	"d..D...d...D..d",
	"....D.....D....",
	".t...t...t...t.",
	"..d...d.d...d..",
	"T..d...*...d..T",
	"..d...d.d...d..",
	".t...t...t...t.",
	"....D.....D....",
	"d..D...d...D..d",
	"..D...d.d...D..",
	".D...t...t...D.",
	"T..d...T...d..T",
}

var layoutCodes = map[rune]model.SquareType{
	'T': model.SquareTripleWord,
	'D': model.SquareDoubleWord,
	't': model.SquareTripleLetter,
	'd': model.SquareDoubleLetter,
	'*': model.SquareCenter,
	'.': model.SquareNormal,
}

// DefaultTemplate returns a fresh copy of the standard layout
func DefaultTemplate() model.Template {
	tmpl, err := ParseTemplate(standardLayout)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "standard layout is invalid"))
	}
	return tmpl
}

// ParseTemplate builds a template from rows of layout codes
func ParseTemplate(rows []string) (model.Template, error) {
	if len(rows) != model.BoardSize {
		return nil, errors.Wrapf(model.ErrInvalidTemplate, "expected %d rows, got %d", model.BoardSize, len(rows))
	}
	tmpl := make(model.Template, len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != model.BoardSize {
			return nil, errors.Wrapf(model.ErrInvalidTemplate, "row %d has %d cells, want %d", y, len(runes), model.BoardSize)
		}
		tmpl[y] = make([]model.SquareType, len(runes))
		for x, code := range runes {
			sq, ok := layoutCodes[code]
			if !ok {
				return nil, errors.Wrapf(model.ErrInvalidTemplate, "unknown square code %q at (%d,%d)", code, x, y)
			}
			tmpl[y][x] = sq
		}
	}
	return tmpl, nil
}

// ValidateTemplate checks a stored template is square and uses known labels
func ValidateTemplate(tmpl model.Template, size int) error {
	if tmpl == nil {
		return nil
	}
	if len(tmpl) != size {
		return errors.Wrapf(model.ErrInvalidTemplate, "template has %d rows, board is %d", len(tmpl), size)
	}
	for y, row := range tmpl {
		if len(row) != size {
			return errors.Wrapf(model.ErrInvalidTemplate, "template row %d has %d cells, board is %d", y, len(row), size)
		}
		for x, sq := range row {
			switch sq {
			case model.SquareNormal, model.SquareDoubleLetter, model.SquareTripleLetter,
				model.SquareDoubleWord, model.SquareTripleWord, model.SquareCenter:
			default:
				return errors.Wrapf(model.ErrInvalidTemplate, "unknown square %q at (%d,%d)", sq, x, y)
			}
		}
	}
	return nil
}

// SquareType returns the label of a cell, using the standard layout when tmpl is nil
func SquareType(tmpl model.Template, x, y int) model.SquareType {
	if tmpl == nil {
		tmpl = defaultTemplate
	}
	if y < 0 || y >= len(tmpl) || x < 0 || x >= len(tmpl[y]) {
		return model.SquareNormal
	}
	return tmpl[y][x]
}

// defaultTemplate is shared read-only by SquareType
var defaultTemplate = DefaultTemplate()
