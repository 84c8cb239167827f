package usecase

import (
	"errors"
	"fmt"
	"path/filepath"

	"feat/config"
	"feat/internal/adapter/fs"
	"feat/internal/domain"
	"feat/internal/port"
	"feat/internal/repo"
)

// ErrConfigExists is returned by Init when a configuration file is present
// and overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// InitResult describes the configuration file written by Init.
type InitResult struct {
	Path     string
	Language domain.Language
}

// InitUseCase writes a starter configuration file.
type InitUseCase struct {
	repo   repo.Context
	walker port.FileWalker
	writer port.FileWriter
}

func NewInitUseCase(rc repo.Context, walker port.FileWalker, writer port.FileWriter) *InitUseCase {
	return &InitUseCase{repo: rc, walker: walker, writer: writer}
}

// Init writes .feat.toml at the repository root. The primary language is
// the one with more source files, counted only when src or lib exists.
func (u *InitUseCase) Init(force bool) (*InitResult, error) {
	path := filepath.Join(u.repo.Root, config.FileName)
	if fs.Exists(path) && !force {
		return nil, fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
	}

	lang, err := u.primaryLanguage()
	if err != nil {
		return nil, err
	}

	if err := u.writer.WriteFile(path, []byte(config.InitTemplate(string(lang)))); err != nil {
		return nil, fmt.Errorf("failed to write config: %w", err)
	}
	return &InitResult{Path: path, Language: lang}, nil
}

func (u *InitUseCase) primaryLanguage() (domain.Language, error) {
	if !fs.IsDir(u.repo.Abs("src")) && !fs.IsDir(u.repo.Abs("lib")) {
		return domain.LangRust, nil
	}

	rust, err := u.walker.Walk(u.repo.Root, []string{".rs"})
	if err != nil {
		return "", fmt.Errorf("failed to count rust files: %w", err)
	}
	python, err := u.walker.Walk(u.repo.Root, []string{".py"})
	if err != nil {
		return "", fmt.Errorf("failed to count python files: %w", err)
	}

	switch {
	case len(rust) > len(python):
		return domain.LangRust, nil
	case len(python) > 0:
		return domain.LangPython, nil
	default:
		return domain.LangRust, nil
	}
}
