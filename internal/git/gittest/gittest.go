// Package gittest builds throwaway repositories with go-git for tests.
package gittest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a repository in a temporary directory.
type Repo struct {
	t    testing.TB
	Dir  string
	Repo *gitlib.Repository

	commits int
}

// Init creates an empty repository in a new temporary directory.
func Init(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	return &Repo{t: t, Dir: dir, Repo: repo}
}

// Commit records a new commit by the given author and returns its hash.
func (r *Repo) Commit(name, email string, when time.Time) string {
	r.t.Helper()
	r.commits++
	file := "file.txt"
	content := fmt.Sprintf("change %d\n", r.commits)
	if err := os.WriteFile(filepath.Join(r.Dir, file), []byte(content), 0o644); err != nil {
		r.t.Fatalf("write file: %v", err)
	}
	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add(file); err != nil {
		r.t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: name, Email: email, When: when}
	hash, err := wt.Commit(fmt.Sprintf("commit %d", r.commits), &gitlib.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("commit: %v", err)
	}
	return hash.String()
}

// Tag creates a lightweight tag, or an annotated one when message is set.
func (r *Repo) Tag(name, hash, message string) {
	r.t.Helper()
	var opts *gitlib.CreateTagOptions
	if message != "" {
		opts = &gitlib.CreateTagOptions{
			Tagger:  &object.Signature{Name: "Tagger", Email: "tagger@example.com", When: time.Now()},
			Message: message,
		}
	}
	if _, err := r.Repo.CreateTag(name, plumbing.NewHash(hash), opts); err != nil {
		r.t.Fatalf("tag %s: %v", name, err)
	}
}

// AddRemote registers a remote with a single URL.
func (r *Repo) AddRemote(name, url string) {
	r.t.Helper()
	if _, err := r.Repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}}); err != nil {
		r.t.Fatalf("remote %s: %v", name, err)
	}
}

// SetUser writes user.name and user.email into the repository config.
func (r *Repo) SetUser(name, email string) {
	r.t.Helper()
	cfg, err := r.Repo.Config()
	if err != nil {
		r.t.Fatalf("config: %v", err)
	}
	cfg.User.Name = name
	cfg.User.Email = email
	if err := r.Repo.SetConfig(cfg); err != nil {
		r.t.Fatalf("set config: %v", err)
	}
}
