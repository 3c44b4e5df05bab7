package locations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"disk-errors/internal/domain"
)

const (
	dirDocuments          = "Documents"
	dirCaches             = "Caches"
	dirApplicationSupport = "Application Support"
)

// LocationService разрешает корневые каталоги окружения и сообщает о недоступных
// через категории 4, 5 и 6. Содержимое файлов не читает и не пишет.
type LocationService struct {
	sharedRoot string
	names      domain.NameValidator

	tempDir func() (string, error)
	userDir func() (string, error)
}

// NewLocationService пустые tempDir и userDir означают системные значения.
func NewLocationService(sharedRoot, tempDir, userDir string, names domain.NameValidator) *LocationService {
	s := &LocationService{
		sharedRoot: sharedRoot,
		names:      names,
		tempDir:    systemTempDir,
		userDir:    os.UserHomeDir,
	}
	if tempDir != "" {
		s.tempDir = fixedDir(tempDir)
	}
	if userDir != "" {
		s.userDir = fixedDir(userDir)
	}
	return s
}

func systemTempDir() (string, error) {
	dir := os.TempDir()
	if dir == "" {
		return "", errors.New("temporary directory is not set")
	}
	return dir, nil
}

func fixedDir(dir string) func() (string, error) {
	return func() (string, error) { return dir, nil }
}

// Root возвращает корень без проверки доступа.
func (s *LocationService) Root(location domain.Location, group string) (string, error) {
	category, ok := location.AccessCategory()
	if !ok {
		return "", fmt.Errorf("location '%s': %w", location, domain.ErrUnknownLocation)
	}

	var (
		root string
		err  error
	)

	switch location {
	case domain.LocationTemporary:
		root, err = s.tempDir()
	case domain.LocationSharedContainer:
		root, err = s.sharedContainer(group)
	default:
		root, err = s.userRoot(location)
	}

	if err != nil {
		return "", s.accessError(category, location, root, err)
	}
	return root, nil
}

func (s *LocationService) userRoot(location domain.Location) (string, error) {
	home, err := s.userDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve user directory")
	}

	switch location {
	case domain.LocationCaches:
		return filepath.Join(home, dirCaches), nil
	case domain.LocationApplicationSupport:
		return filepath.Join(home, dirApplicationSupport), nil
	default:
		return filepath.Join(home, dirDocuments), nil
	}
}

func (s *LocationService) sharedContainer(group string) (string, error) {
	if s.sharedRoot == "" {
		return "", errors.New("shared container root is not configured")
	}
	if group == "" {
		return "", errors.New("group name is required")
	}
	// имя группы не должно выводить за пределы корня контейнеров
	if filepath.Base(group) != group || group == domain.PathCurrent || group == domain.PathTraversalPrefix {
		return "", errors.Errorf("invalid group name %q", group)
	}
	return filepath.Join(s.sharedRoot, group), nil
}

// Resolve добавляет к корню проверенный относительный путь.
func (s *LocationService) Resolve(location domain.Location, group, path string) (string, error) {
	root, err := s.Root(location, group)
	if err != nil {
		return "", err
	}
	if path == domain.PathEmpty {
		return root, nil
	}

	validPath, err := s.names.ValidateFileName(path)
	if err != nil {
		return "", err
	}

	// путь после Join должен остаться внутри корня, иначе ".." выводит за его пределы.
	base := filepath.Clean(root)
	fullPath := filepath.Join(base, validPath)
	rel, relErr := filepath.Rel(base, fullPath)
	if relErr != nil || rel == domain.PathTraversalPrefix ||
		strings.HasPrefix(rel, domain.PathTraversalPrefix+string(filepath.Separator)) {
		return "", domain.Classify(domain.InvalidFileName, path).
			WithDescription(fmt.Sprintf("path traversal detected in %s", path)).
			WithFailureReason(fmt.Sprintf("Cannot write/read a file with the name %s on disk.", path))
	}
	return fullPath, nil
}

// Locate как Resolve, но путь должен существовать.
func (s *LocationService) Locate(location domain.Location, group, path string) (string, error) {
	fullPath, err := s.Resolve(location, group, path)
	if err != nil {
		return "", err
	}

	if _, statErr := os.Stat(fullPath); statErr != nil {
		if os.IsNotExist(statErr) {
			return "", domain.Classify(domain.NoFileFound, fullPath).
				WithDescription(fmt.Sprintf("Could not find an existing file or folder at %s.", fullPath))
		}
		category, _ := location.AccessCategory()
		return "", s.accessError(category, location, fullPath, errors.Wrapf(statErr, "stat %s", fullPath))
	}
	return fullPath, nil
}

// Probe проверяет, что корень существует, является каталогом и читается.
func (s *LocationService) Probe(location domain.Location, group string) (string, error) {
	root, err := s.Root(location, group)
	if err != nil {
		return "", err
	}
	category, _ := location.AccessCategory()

	info, err := os.Stat(root)
	if err != nil {
		return "", s.accessError(category, location, root, errors.Wrapf(err, "stat %s", root))
	}
	if !info.IsDir() {
		return "", s.accessError(category, location, root, errors.Errorf("%s is not a directory", root))
	}

	f, err := os.Open(root)
	if err != nil {
		return "", s.accessError(category, location, root, errors.Wrapf(err, "open %s", root))
	}
	if closeErr := f.Close(); closeErr != nil {
		logrus.Warnf("Failed to close directory %s: %v", root, closeErr)
	}

	return root, nil
}

func (s *LocationService) accessError(category domain.ErrorCategory, location domain.Location, path string, cause error) error {
	// путь, который пытались открыть, обязательно в лог
	logrus.WithFields(logrus.Fields{
		"location": location,
		"path":     path,
		"identity": domain.Identity(category),
	}).Warnf("Location unavailable: %v", cause)

	return domain.Classify(category, path).
		WithDescription(fmt.Sprintf("Could not create path for %s", location)).
		WithCause(cause)
}
