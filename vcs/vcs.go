// Package vcs initializes the project's source-control repository.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-billy/v5"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

type (
	// Identity is written to the repository-local config when set.
	Identity struct {
		Name  string
		Email string
	}
)

const (
	DirName = git.GitDirName
)

var (
	ErrAlreadyInitialized = errors.New("repository already initialized")
)

func open(fs billy.Filesystem) (*filesystem.Storage, error) {
	dot, err := fs.Chroot(DirName)
	if err != nil {
		return nil, fmt.Errorf("failed to chroot into %s: %w", DirName, err)
	}

	return filesystem.NewStorage(dot, cache.NewObjectLRUDefault()), nil
}

// Init creates an empty repository with fs as its worktree.
// Non-nil returned error wraps [ErrAlreadyInitialized] when fs already holds a repository.
func Init(fs billy.Filesystem, id Identity) error {
	st, err := open(fs)
	if err != nil {
		return err
	}

	repo, err := git.Init(st, fs)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("failed to init repository: %w", ErrAlreadyInitialized)
	}

	if err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}

	if id.Name == "" && id.Email == "" {
		return nil
	}

	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read repository config: %w", err)
	}

	if id.Name != "" {
		cfg.User.Name = id.Name
	}

	if id.Email != "" {
		cfg.User.Email = id.Email
	}

	if err = repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write repository config: %w", err)
	}

	return nil
}

// LocalIdentity reads the user identity from the repository-local config of fs.
func LocalIdentity(fs billy.Filesystem) (id Identity, err error) {
	st, err := open(fs)
	if err != nil {
		return id, err
	}

	repo, err := git.Open(st, fs)
	if err != nil {
		return id, fmt.Errorf("failed to open repository: %w", err)
	}

	cfg, err := repo.Config()
	if err != nil {
		return id, fmt.Errorf("failed to read repository config: %w", err)
	}

	return Identity{Name: cfg.User.Name, Email: cfg.User.Email}, nil
}
