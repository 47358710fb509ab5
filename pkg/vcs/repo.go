package vcs

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Branch returns the checked-out branch, or the short commit hash when HEAD
// is detached. It reads the repository directly and does not need the git
// binary. An unborn branch yields "". The lookup is abandoned when ctx is
// done.
func (g *Git) Branch(ctx context.Context) (string, error) {
	type lookup struct {
		branch string
		err    error
	}
	done := make(chan lookup, 1)
	go func() {
		branch, err := g.branch()
		done <- lookup{branch, err}
	}()
	select {
	case l := <-done:
		return l.branch, l.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *Git) branch() (string, error) {
	path := g.Dir
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", ErrNotInWorkTree
		}
		return "", fmt.Errorf("open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String()[:7], nil
}
