package usecases

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"disk-errors/internal/domain"
)

const invalidNameReasonFormat = "Cannot write/read a file with the name %s on disk."

type FileNameValidator struct {
	maxLength int
}

func NewFileNameValidator(maxLength int) *FileNameValidator {
	return &FileNameValidator{maxLength: maxLength}
}

// ValidateFileName чистит имя от недопустимых символов и ведущих слешей.
// Если после чистки ничего не осталось (или осталась "."), возвращается InvalidFileName.
func (v *FileNameValidator) ValidateFileName(name string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if isInvalidNameRune(r) {
			return -1
		}
		return r
	}, name)
	cleaned = strings.TrimLeft(cleaned, domain.PathSeparator)

	if cleaned == domain.PathEmpty || cleaned == domain.PathCurrent {
		return "", domain.Classify(domain.InvalidFileName, name).
			WithDescription(fmt.Sprintf("%s is an invalid file name.", name)).
			WithFailureReason(fmt.Sprintf(invalidNameReasonFormat, name))
	}

	if v.maxLength > 0 && utf8.RuneCountInString(cleaned) > v.maxLength {
		return "", domain.Classify(domain.InvalidFileName, name).
			WithDescription(fmt.Sprintf("file name too long (%d > %d)", utf8.RuneCountInString(cleaned), v.maxLength)).
			WithFailureReason(fmt.Sprintf(invalidNameReasonFormat, name))
	}

	return cleaned, nil
}

func isInvalidNameRune(r rune) bool {
	switch {
	case string(r) == domain.InvalidNameColon:
		return true
	case r == utf8.RuneError:
		// битые байты strings.Map отдаёт как RuneError
		return true
	case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		return true
	case r == '\u2028', r == '\u2029': // разделители строк
		return true
	case isNoncharacter(r):
		return true
	}
	return false
}

func isNoncharacter(r rune) bool {
	return (r >= 0xFDD0 && r <= 0xFDEF) || r&0xFFFE == 0xFFFE
}
