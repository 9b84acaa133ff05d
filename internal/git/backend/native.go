package backend

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type native struct {
	repo *gitlib.Repository
	path string
}

// OpenNative opens the repository containing repoPath with go-git, without
// needing a git executable.
func OpenNative(repoPath string) (Backend, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &native{repo: repo, path: root}, nil
}

func (n *native) RepoPath() string {
	return n.path
}

func (n *native) HeadState() (hash string, headName string, ok bool, err error) {
	ref, err := n.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", "", false, nil
		}
		return "", "", false, fmt.Errorf("resolve HEAD: %w", err)
	}
	headName = "HEAD"
	if ref.Name().IsBranch() {
		headName = ref.Name().Short()
	}
	return ref.Hash().String(), headName, true, nil
}

func (n *native) ListRefs() ([]Ref, error) {
	iter, err := n.repo.References()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		out := Ref{Hash: ref.Hash().String(), Name: name.Short(), RefName: name.String()}
		switch {
		case name.IsTag():
			out.Kind = RefKindTag
			peeled, ok := n.peelTagCommitHash(ref.Hash())
			if !ok {
				return nil
			}
			out.Hash = peeled.String()
			out.Name = strings.TrimPrefix(name.String(), "refs/tags/")
		case name.IsBranch():
			out.Kind = RefKindBranch
		case name.IsRemote():
			out.Kind = RefKindRemoteBranch
		default:
			return nil
		}
		refs = append(refs, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(refs, func(a, b Ref) int {
		return strings.Compare(a.RefName, b.RefName)
	})
	return refs, nil
}

func (n *native) peelTagCommitHash(hash plumbing.Hash) (plumbing.Hash, bool) {
	if hash == plumbing.ZeroHash {
		return plumbing.ZeroHash, false
	}
	// Lightweight tags point directly at a commit; annotated tags point at a tag object.
	if _, err := n.repo.CommitObject(hash); err == nil {
		return hash, true
	}
	cur := hash
	for range 8 {
		tag, err := n.repo.TagObject(cur)
		if err != nil {
			return plumbing.ZeroHash, false
		}
		switch tag.TargetType {
		case plumbing.CommitObject:
			return tag.Target, true
		case plumbing.TagObject:
			cur = tag.Target
		default:
			return plumbing.ZeroHash, false
		}
	}
	return plumbing.ZeroHash, false
}

func (n *native) StartLogStream(fromHash string) (LogStream, error) {
	fromHash = strings.TrimSpace(fromHash)
	if fromHash == "" {
		return nil, fmt.Errorf("starting commit not specified")
	}
	iter, err := n.repo.Log(&gitlib.LogOptions{
		From:  plumbing.NewHash(fromHash),
		Order: gitlib.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	return &nativeLogStream{iter: iter}, nil
}

func (n *native) ConfigValue(key string) (string, bool, error) {
	cfg, err := n.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return "", false, fmt.Errorf("read config: %w", err)
	}
	var value string
	switch key {
	case "user.name":
		value = cfg.User.Name
	case "user.email":
		value = cfg.User.Email
	default:
		section, option, ok := strings.Cut(key, ".")
		if !ok || cfg.Raw == nil || !cfg.Raw.HasSection(section) {
			return "", false, nil
		}
		value = cfg.Raw.Section(section).Option(option)
	}
	return value, value != "", nil
}

func (n *native) RemoteURLs() ([]string, error) {
	remotes, err := n.repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	slices.SortFunc(remotes, func(a, b *gitlib.Remote) int {
		return strings.Compare(a.Config().Name, b.Config().Name)
	})
	var urls []string
	for _, remote := range remotes {
		if cfg := remote.Config(); cfg != nil && len(cfg.URLs) > 0 && cfg.URLs[0] != "" {
			urls = append(urls, cfg.URLs[0])
		}
	}
	return urls, nil
}

type nativeLogStream struct {
	iter object.CommitIter
}

func (s *nativeLogStream) Next() (*Commit, error) {
	c, err := s.iter.Next()
	if err != nil {
		return nil, err
	}
	parents := make([]string, 0, len(c.ParentHashes))
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return &Commit{
		Hash:         c.Hash.String(),
		ParentHashes: parents,
		Author:       Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
		Committer:    Signature{Name: c.Committer.Name, Email: c.Committer.Email, When: c.Committer.When},
	}, nil
}

func (s *nativeLogStream) Close() error {
	s.iter.Close()
	return nil
}
