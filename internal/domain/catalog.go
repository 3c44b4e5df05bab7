package domain

// CategoryInfo описание категории для отдачи наружу. Identity единственное стабильное поле.
type CategoryInfo struct {
	Identity           int        `json:"identity" yaml:"identity"`
	Name               string     `json:"name" yaml:"name"`
	Class              ErrorClass `json:"class" yaml:"class"`
	Meaning            string     `json:"meaning" yaml:"meaning"`
	FailureReason      string     `json:"failure_reason" yaml:"failure_reason"`
	RecoverySuggestion string     `json:"recovery_suggestion" yaml:"recovery_suggestion"`
	Retryable          bool       `json:"retryable" yaml:"retryable"`
}

// Describe собирает CategoryInfo для категории из закрытого набора.
func Describe(c ErrorCategory) (CategoryInfo, bool) {
	if !c.valid() {
		return CategoryInfo{}, false
	}
	info := categories[c]
	return CategoryInfo{
		Identity:           Identity(c),
		Name:               info.name,
		Class:              info.class,
		Meaning:            info.meaning,
		FailureReason:      info.failureReason,
		RecoverySuggestion: info.recoverySuggestion,
		Retryable:          c.Retryable(),
	}, true
}

// ErrorReport сериализуемый вид *Error для передачи в другой рантайм.
type ErrorReport struct {
	Domain             string     `json:"domain" yaml:"domain"`
	Identity           int        `json:"identity" yaml:"identity"`
	Name               string     `json:"name" yaml:"name"`
	Class              ErrorClass `json:"class" yaml:"class"`
	Context            string     `json:"context" yaml:"context"`
	Description        string     `json:"description,omitempty" yaml:"description,omitempty"`
	FailureReason      string     `json:"failure_reason,omitempty" yaml:"failure_reason,omitempty"`
	RecoverySuggestion string     `json:"recovery_suggestion,omitempty" yaml:"recovery_suggestion,omitempty"`
	Cause              string     `json:"cause,omitempty" yaml:"cause,omitempty"`
}

func (e *Error) Report() ErrorReport {
	r := ErrorReport{
		Domain:             ErrorDomain,
		Identity:           e.Identity(),
		Name:               e.Category.String(),
		Class:              e.Category.Class(),
		Context:            e.Context,
		Description:        e.Description,
		FailureReason:      e.FailureReason,
		RecoverySuggestion: e.RecoverySuggestion,
	}
	if e.Err != nil {
		r.Cause = e.Err.Error()
	}
	return r
}

// Location корневые каталоги окружения.
type Location string

const (
	LocationDocuments          Location = "documents"
	LocationCaches             Location = "caches"
	LocationApplicationSupport Location = "application_support"
	LocationTemporary          Location = "temporary"
	LocationSharedContainer    Location = "shared_container"
)

// AccessCategory категория, которой сообщается недоступность каталога.
func (l Location) AccessCategory() (ErrorCategory, bool) {
	switch l {
	case LocationDocuments, LocationCaches, LocationApplicationSupport:
		return CouldNotAccessUserDomainMask, true
	case LocationTemporary:
		return CouldNotAccessTemporaryDirectory, true
	case LocationSharedContainer:
		return CouldNotAccessSharedContainer, true
	default:
		return 0, false
	}
}

// ErrorCatalog сценарии работы со справочником категорий.
type ErrorCatalog interface {
	List() []CategoryInfo
	Lookup(identity int) (CategoryInfo, error)
	LookupName(name string) (CategoryInfo, error)
	Classify(identity int, context string) (*Error, error)
	Translate(err error) (ErrorCategory, bool)
}

// NameValidator проверка имён файлов.
type NameValidator interface {
	ValidateFileName(name string) (string, error)
}

// LocationProbe разрешение и проверка каталогов окружения.
type LocationProbe interface {
	Root(location Location, group string) (string, error)
	Resolve(location Location, group, path string) (string, error)
	Locate(location Location, group, path string) (string, error)
	Probe(location Location, group string) (string, error)
}
