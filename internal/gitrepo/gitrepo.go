// Package gitrepo answers the two questions mermaidlint asks of the enclosing
// git repository: where its worktree starts and where origin points.
package gitrepo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

func open(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository at %s: %w", dir, err)
	}
	return repo, nil
}

// Root returns the worktree root of the repository containing dir.
func Root(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("bare repository at %s: %w", dir, err)
	}
	return wt.Filesystem.Root(), nil
}

// OriginURL returns the first URL of the origin remote.
func OriginURL(dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("remote %q: %w", git.DefaultRemoteName, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", git.DefaultRemoteName)
	}
	return urls[0], nil
}
