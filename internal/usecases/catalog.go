package usecases

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"disk-errors/internal/domain"
)

type CatalogUseCase struct{}

func NewCatalogUseCase() *CatalogUseCase {
	return &CatalogUseCase{}
}

func (uc *CatalogUseCase) List() []domain.CategoryInfo {
	all := domain.Categories()
	infos := make([]domain.CategoryInfo, 0, len(all))
	for _, c := range all {
		info, _ := domain.Describe(c)
		infos = append(infos, info)
	}
	return infos
}

func (uc *CatalogUseCase) Lookup(identity int) (domain.CategoryInfo, error) {
	c, ok := domain.CategoryFrom(identity)
	if !ok {
		return domain.CategoryInfo{}, fmt.Errorf("identity %d: %w", identity, domain.ErrUnknownCategory)
	}
	info, _ := domain.Describe(c)
	return info, nil
}

func (uc *CatalogUseCase) LookupName(name string) (domain.CategoryInfo, error) {
	c, ok := domain.ParseCategory(name)
	if !ok {
		return domain.CategoryInfo{}, fmt.Errorf("name '%s': %w", name, domain.ErrUnknownCategory)
	}
	info, _ := domain.Describe(c)
	return info, nil
}

// Classify строит ошибку по числовому коду, пришедшему снаружи.
// Сам domain.Classify не падает, ошибка здесь только про неизвестный код.
func (uc *CatalogUseCase) Classify(identity int, context string) (*domain.Error, error) {
	c, ok := domain.CategoryFrom(identity)
	if !ok {
		return nil, fmt.Errorf("identity %d: %w", identity, domain.ErrUnknownCategory)
	}
	return domain.Classify(c, context), nil
}

// Translate сопоставляет ошибки стандартной библиотеки и кодеков с категориями.
func (uc *CatalogUseCase) Translate(err error) (domain.ErrorCategory, bool) {
	if err == nil {
		return 0, false
	}

	if c, ok := domain.CategoryOf(err); ok {
		return c, true
	}

	var (
		unsupportedType  *json.UnsupportedTypeError
		unsupportedValue *json.UnsupportedValueError
		marshalerErr     *json.MarshalerError
		syntaxErr        *json.SyntaxError
		unmarshalTypeErr *json.UnmarshalTypeError
		invalidUnmarshal *json.InvalidUnmarshalError
		yamlTypeErr      *yaml.TypeError
	)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.NoFileFound, true
	case errors.As(err, &unsupportedType), errors.As(err, &unsupportedValue), errors.As(err, &marshalerErr):
		return domain.Serialization, true
	case errors.As(err, &syntaxErr), errors.As(err, &unmarshalTypeErr), errors.As(err, &invalidUnmarshal):
		return domain.Deserialization, true
	case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &yamlTypeErr), isYAMLSyntaxError(err):
		return domain.Deserialization, true
	default:
		return 0, false
	}
}

// yamlErrorPrefix у синтаксических ошибок yaml.v3 нет своего типа, только текст с этим префиксом.
const yamlErrorPrefix = "yaml: "

func isYAMLSyntaxError(err error) bool {
	if err == nil {
		return false
	}
	if strings.HasPrefix(err.Error(), yamlErrorPrefix) {
		return true
	}

	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if isYAMLSyntaxError(inner) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return isYAMLSyntaxError(u.Unwrap())
	default:
		return false
	}
}
