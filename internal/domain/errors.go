package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorDomain общий домен для всех ошибок диска.
const ErrorDomain = "DiskErrorDomain"

// ErrorCategory классифицирует сбой дисковой операции.
// Числовые значения стабильны: их можно сохранять и передавать, менять порядок нельзя.
type ErrorCategory int

const (
	NoFileFound ErrorCategory = iota
	Serialization
	Deserialization
	InvalidFileName
	CouldNotAccessTemporaryDirectory
	CouldNotAccessUserDomainMask
	CouldNotAccessSharedContainer
)

// ErrorClass группирует категории по тому, как вызывающий код с ними обращается.
type ErrorClass string

const (
	ClassExistence         ErrorClass = "existence"
	ClassConversion        ErrorClass = "conversion"
	ClassEnvironmentAccess ErrorClass = "environment_access"
	ClassUnknown           ErrorClass = "unknown"
)

var (
	ErrUnknownCategory   = errors.New("unknown error category")
	ErrMalformedIdentity = errors.New("malformed error identity")
	ErrUnknownLocation   = errors.New("unknown location")
)

type categoryInfo struct {
	name               string
	class              ErrorClass
	meaning            string
	failureReason      string
	recoverySuggestion string
}

// индекс совпадает с числовым кодом категории.
var categories = [...]categoryInfo{
	NoFileFound: {
		name:               "NoFileFound",
		class:              ClassExistence,
		meaning:            "Target file does not exist at the expected location",
		failureReason:      "There is no existing file or folder at the requested path.",
		recoverySuggestion: "Check if a file or folder exists before trying to commit an operation on it.",
	},
	Serialization: {
		name:               "Serialization",
		class:              ClassConversion,
		meaning:            "Converting an in-memory value to a storable byte representation failed",
		failureReason:      "The value could not be encoded for storage.",
		recoverySuggestion: "Make sure the value only holds encodable fields.",
	},
	Deserialization: {
		name:               "Deserialization",
		class:              ClassConversion,
		meaning:            "Converting a stored byte representation back to an in-memory value failed",
		failureReason:      "The stored data could not be decoded into the requested type.",
		recoverySuggestion: "Make sure the requested type matches the type that was stored.",
	},
	InvalidFileName: {
		name:               "InvalidFileName",
		class:              ClassConversion,
		meaning:            "Supplied file name violates naming constraints",
		failureReason:      "Cannot write or read a file with this name on disk.",
		recoverySuggestion: "Use another file name with alphanumeric characters.",
	},
	CouldNotAccessTemporaryDirectory: {
		name:               "CouldNotAccessTemporaryDirectory",
		class:              ClassEnvironmentAccess,
		meaning:            "The transient scratch storage location is unavailable",
		failureReason:      "Could not get access to the temporary directory.",
		recoverySuggestion: "Use a different directory.",
	},
	CouldNotAccessUserDomainMask: {
		name:               "CouldNotAccessUserDomainMask",
		class:              ClassEnvironmentAccess,
		meaning:            "The per-user storage root is unavailable",
		failureReason:      "Could not get access to the file system's user domain.",
		recoverySuggestion: "Use a different directory.",
	},
	CouldNotAccessSharedContainer: {
		name:               "CouldNotAccessSharedContainer",
		class:              ClassEnvironmentAccess,
		meaning:            "The shared/group storage location is unavailable",
		failureReason:      "Could not get access to the shared container.",
		recoverySuggestion: "Check that the group name matches an existing shared container.",
	},
}

// Categories возвращает все категории в порядке объявления.
func Categories() []ErrorCategory {
	out := make([]ErrorCategory, len(categories))
	for i := range categories {
		out[i] = ErrorCategory(i)
	}
	return out
}

// Identity возвращает стабильный числовой код категории.
func Identity(c ErrorCategory) int {
	return int(c)
}

// CategoryFrom обратный поиск по коду. Коды вне закрытого набора возвращают false,
// так старая версия спокойно читает коды от новой.
func CategoryFrom(identity int) (ErrorCategory, bool) {
	if identity < 0 || identity >= len(categories) {
		return 0, false
	}
	return ErrorCategory(identity), true
}

// ParseCategory ищет категорию по символьному имени без учёта регистра.
func ParseCategory(name string) (ErrorCategory, bool) {
	for i, info := range categories {
		if strings.EqualFold(info.name, name) {
			return ErrorCategory(i), true
		}
	}
	return 0, false
}

func (c ErrorCategory) valid() bool {
	_, ok := CategoryFrom(int(c))
	return ok
}

func (c ErrorCategory) String() string {
	if !c.valid() {
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
	return categories[c].name
}

func (c ErrorCategory) Class() ErrorClass {
	if !c.valid() {
		return ClassUnknown
	}
	return categories[c].class
}

func (c ErrorCategory) Meaning() string {
	if !c.valid() {
		return ""
	}
	return categories[c].meaning
}

// Retryable всегда false: повтор без изменения окружения или данных не поможет.
func (c ErrorCategory) Retryable() bool {
	return false
}

// Error ошибка дисковой операции с категорией и необязательным контекстом (обычно путь).
type Error struct {
	Category           ErrorCategory
	Context            string
	Description        string
	FailureReason      string
	RecoverySuggestion string
	Err                error
}

// Classify создаёт новую ошибку заданной категории. Никогда не падает.
func Classify(kind ErrorCategory, context string) *Error {
	e := &Error{
		Category: kind,
		Context:  context,
	}
	if kind.valid() {
		e.FailureReason = categories[kind].failureReason
		e.RecoverySuggestion = categories[kind].recoverySuggestion
	}
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("%s(%d) %s", ErrorDomain, Identity(e.Category), e.Category)
	switch {
	case e.Description != "":
		msg += ": " + e.Description
	case e.Context != "":
		msg += ": " + e.Context
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is совпадает с любой *Error той же категории, контекст не сравнивается.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Category == t.Category
}

// Identity возвращает код категории ошибки.
func (e *Error) Identity() int {
	return Identity(e.Category)
}

func (e *Error) WithDescription(description string) *Error {
	e.Description = description
	return e
}

func (e *Error) WithFailureReason(reason string) *Error {
	e.FailureReason = reason
	return e
}

func (e *Error) WithRecoverySuggestion(suggestion string) *Error {
	e.RecoverySuggestion = suggestion
	return e
}

func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// CategoryOf достаёт категорию из цепочки ошибок.
func CategoryOf(err error) (ErrorCategory, bool) {
	var de *Error
	if errors.As(err, &de) && de != nil {
		return de.Category, true
	}
	return 0, false
}
