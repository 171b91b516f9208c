// Package config provides the manifest loader for freshen.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/freshen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the manifest schema version this loader understands.
const SupportedVersion = "1"

// Filenames are the manifest names searched for, in order of preference.
var Filenames = []string{"freshen.yaml", "freshen.yml", "freshen.toml"}

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader for YAML and TOML files.
type FileConfigLoader struct {
	Logger ports.Logger
}

// NewLoader creates a new FileConfigLoader.
func NewLoader(log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{Logger: log}
}

// Load reads the manifest at path, or discovers one starting at cwd when
// path is empty. The manifest's Root is the directory that contains it.
func (l *FileConfigLoader) Load(cwd, path string) (*domain.Manifest, error) {
	if path == "" {
		found, err := Discover(cwd)
		if err != nil {
			return nil, err
		}
		path = found
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}

	m, err := Load(path)
	if err != nil {
		return nil, err
	}

	if l.Logger != nil {
		l.Logger.Debug("loaded manifest " + path)
	}
	return m, nil
}

// Discover walks up from dir looking for a manifest file.
func Discover(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrConfigNotFound, err), "dir", dir)
	}

	for {
		for _, name := range Filenames {
			candidate := filepath.Join(current, name)
			if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", domain.ErrConfigNotFound
		}
		current = parent
	}
}

// Load reads the manifest file at path.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigReadFailed, err), "path", path)
	}

	var dto Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &dto)
	case ".toml":
		err = toml.Unmarshal(data, &dto)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedConfigFormat, filepath.Base(path)), "path", path)
	}
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfigParseFailed, err), "path", path)
	}

	m, err := dto.toDomain(filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return m, nil
}

func (dto *Manifest) toDomain(root string) (*domain.Manifest, error) {
	if dto.Version != "" && dto.Version != SupportedVersion {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrConfigParseFailed, "unsupported manifest version"),
			"version", dto.Version,
		)
	}

	m := &domain.Manifest{
		Root:   root,
		OutDir: dto.OutDir,
		Tools: domain.Tools{
			Lex:      dto.Tools.Lex,
			Yacc:     dto.Tools.Yacc,
			Cc:       dto.Tools.Cc,
			Link:     dto.Tools.Link,
			ClassGen: dto.Tools.ClassGen,
			Copy:     dto.Tools.Copy,
		}.WithDefaults(),
		CFlags:   dto.CFlags,
		LDFlags:  dto.LDFlags,
		Includes: dto.Includes,
		Headers:  dto.Headers,
		Env:      dto.Env,
		ClassGen: dto.ClassGen,
		Lex:      dto.Lex,
		Yacc:     dto.Yacc,
		Sources:  dto.Sources,
		Link: domain.LinkSpec{
			Output: dto.Link.Output,
			Libs:   dto.Link.Libs,
		},
	}

	for i, c := range dto.Copy {
		if c.From == "" || c.To == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "copy entry needs from and to"), "index", i)
		}
		m.Copy = append(m.Copy, domain.CopySpec{From: c.From, To: c.To})
	}

	if dto.Timeout != "" {
		d, err := time.ParseDuration(dto.Timeout)
		if err != nil || d < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidTimeout, dto.Timeout), "timeout", dto.Timeout)
		}
		m.Timeout = d
	}

	return m, nil
}
