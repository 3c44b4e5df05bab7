package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LocationsConfig struct {
	// SharedContainerRoot каталог, внутри которого лежат контейнеры групп.
	SharedContainerRoot string `yaml:"shared_container_root"`
	// TemporaryDir переопределяет os.TempDir, если задан.
	TemporaryDir string `yaml:"temporary_dir"`
	// UserDir переопределяет корень пользовательских каталогов, если задан.
	UserDir string `yaml:"user_dir"`
}

type FileConfig struct {
	MaxNameLength int `yaml:"max_name_length"`
}

type RoutesConfig struct {
	Categories   string `yaml:"categories"`
	Category     string `yaml:"category"`
	Classify     string `yaml:"classify"`
	ValidateName string `yaml:"validate_name"`
	Locations    string `yaml:"locations"`
}

type Messages struct {
	MalformedRequest  string `yaml:"malformed_request"`
	UnknownCategory   string `yaml:"unknown_category"`
	UnknownLocation   string `yaml:"unknown_location"`
	MethodNotAllowed  string `yaml:"method_not_allowed"`
	UnsupportedFormat string `yaml:"unsupported_format"`
	InternalError     string `yaml:"internal_error"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Locations LocationsConfig `yaml:"locations"`
	File      FileConfig      `yaml:"file"`
	Routes    RoutesConfig    `yaml:"routes"`
	Messages  Messages        `yaml:"messages"`
}

func LoadConfig(filename string) *Config {
	cfg, err := LoadConfigWithError(filename)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func LoadConfigWithError(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	// пустые переопределения оставляем пустыми, иначе Abs превратит их в рабочий каталог.
	paths := map[string]*string{
		"shared container root": &cfg.Locations.SharedContainerRoot,
		"temporary dir":         &cfg.Locations.TemporaryDir,
		"user dir":              &cfg.Locations.UserDir,
	}

	for name, path := range paths {
		if *path == "" {
			continue
		}
		absPath, absErr := filepath.Abs(*path)
		if absErr != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, absErr)
		}
		*path = absPath
	}

	if validationErr := validateConfig(&cfg); validationErr != nil {
		return nil, validationErr
	}

	return &cfg, nil
}

type validationError struct {
	field string
	msg   string
}

func (e validationError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.msg)
}

func validateConfig(cfg *Config) error {
	type validator func() error

	validators := []validator{
		func() error { return validateRequiredString("routes.categories", cfg.Routes.Categories) },
		func() error { return validateRequiredString("routes.category", cfg.Routes.Category) },
		func() error { return validateRequiredString("routes.classify", cfg.Routes.Classify) },
		func() error { return validateRequiredString("routes.validate_name", cfg.Routes.ValidateName) },
		func() error { return validateRequiredString("routes.locations", cfg.Routes.Locations) },
		func() error { return validatePort(cfg.Server.Port) },
		func() error { return validatePositiveInt("file.max_name_length", cfg.File.MaxNameLength) },
	}

	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}

	return nil
}

func validateRequiredString(field, value string) error {
	if value == "" {
		return validationError{field: field, msg: "is required"}
	}
	return nil
}

func validatePositiveInt(field string, value int) error {
	if value <= 0 {
		return validationError{field: field, msg: "must be greater than 0"}
	}
	return nil
}

func validatePort(port int) error {
	if port <= 0 || port > 65535 {
		return validationError{
			field: "server.port",
			msg:   fmt.Sprintf("must be between 1 and 65535, got %d", port),
		}
	}
	return nil
}
