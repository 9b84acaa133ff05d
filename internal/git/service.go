package git

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gitbackend "github.com/thiagokokada/spdx-guide/internal/git/backend"
	"github.com/thiagokokada/spdx-guide/internal/vcs"
)

// Name is the backend name written into download locations (git+https://...).
const Name = "git"

const tagRefPrefix = "refs/tags/"

type BackendKind string

const (
	BackendNative BackendKind = "native"
	BackendCLI    BackendKind = "cli"
)

var ErrUnknownBackend = errors.New("unknown git backend")

func ParseBackendKind(raw string) (BackendKind, error) {
	switch kind := BackendKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case "", BackendNative:
		return BackendNative, nil
	case BackendCLI:
		return BackendCLI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, raw)
	}
}

// Service builds VCS snapshots from a git backend.
type Service struct {
	backend gitbackend.Backend
}

func Open(repoPath string, kind BackendKind) (*Service, error) {
	var (
		b   gitbackend.Backend
		err error
	)
	switch kind {
	case BackendCLI:
		b, err = gitbackend.OpenCLI(repoPath)
	case BackendNative, "":
		b, err = gitbackend.OpenNative(repoPath)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("git repository opened", slog.String("path", b.RepoPath()), slog.String("backend", string(kind)))
	return NewWithBackend(b), nil
}

func NewWithBackend(b gitbackend.Backend) *Service {
	return &Service{backend: b}
}

// Opener adapts Open to vcs.Detect.
func Opener(kind BackendKind) vcs.Opener {
	return func(path string) (vcs.Repository, error) {
		return Open(path, kind)
	}
}

// ReadInfo gathers the snapshot in one pass. Every lookup is best effort: a
// failure leaves the matching field empty and is only logged.
func (s *Service) ReadInfo() vcs.Info {
	info := vcs.Info{
		Name:       Name,
		User:       s.configuredUser(),
		RemoteURLs: s.remoteURLs(),
	}

	hash, headName, ok, err := s.backend.HeadState()
	if err != nil {
		slog.Debug("resolve HEAD", slog.Any("error", err))
		return info
	}
	if !ok {
		return info
	}

	h, err := s.walkHistory(hash, s.tagsByCommit())
	if err != nil {
		slog.Debug("walk history", slog.Any("error", err))
	} else {
		info.ActiveAuthors = h.tally.Active(vcs.MaxRankedAuthors)
		info.OldestAuthors = h.tally.Oldest(vcs.MaxRankedAuthors)
		info.CommitsScanned = h.commits
	}

	if headName != "" && headName != "HEAD" {
		info.HeadRefs = append(info.HeadRefs, headName)
	}
	if h.nearestTag != nil {
		info.HeadRefs = append(info.HeadRefs, h.nearestTag.Name)
		info.LatestTag = h.nearestTag.RefName
		info.LatestVersion = strings.TrimPrefix(info.LatestTag, tagRefPrefix)
	}
	info.HeadRefs = append(info.HeadRefs, hash)
	return info
}

func (s *Service) configuredUser() *vcs.User {
	name, ok, err := s.backend.ConfigValue("user.name")
	if err != nil {
		slog.Debug("read user.name", slog.Any("error", err))
		return nil
	}
	if !ok {
		return nil
	}
	email, _, err := s.backend.ConfigValue("user.email")
	if err != nil {
		slog.Debug("read user.email", slog.Any("error", err))
	}
	return &vcs.User{Name: name, Email: email}
}

func (s *Service) remoteURLs() []string {
	urls, err := s.backend.RemoteURLs()
	if err != nil {
		slog.Debug("read remotes", slog.Any("error", err))
		return nil
	}
	return urls
}

// tagsByCommit maps peeled commit hashes to the first tag pointing at them.
func (s *Service) tagsByCommit() map[string]gitbackend.Ref {
	refs, err := s.backend.ListRefs()
	if err != nil {
		slog.Debug("list refs", slog.Any("error", err))
		return nil
	}
	tags := map[string]gitbackend.Ref{}
	for _, ref := range refs {
		if ref.Kind != gitbackend.RefKindTag || ref.Hash == "" || !strings.HasPrefix(ref.RefName, tagRefPrefix) {
			continue
		}
		if _, dup := tags[ref.Hash]; !dup {
			tags[ref.Hash] = ref
		}
	}
	return tags
}

type history struct {
	tally      *vcs.Tally
	nearestTag *gitbackend.Ref
	commits    int
}

// walkHistory follows ancestry from the given commit, newest first, tallying
// authors and remembering the first tagged commit it meets.
func (s *Service) walkHistory(from string, tags map[string]gitbackend.Ref) (history, error) {
	stream, err := s.backend.StartLogStream(from)
	if err != nil {
		return history{}, err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			slog.Debug("log stream close", slog.Any("error", err))
		}
	}()

	h := history{tally: vcs.NewTally()}
	for {
		commit, err := stream.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return history{}, fmt.Errorf("iterate commits: %w", err)
		}
		h.commits++
		if h.nearestTag == nil {
			if tag, ok := tags[commit.Hash]; ok {
				h.nearestTag = &tag
			}
		}
		if commit.Author.Name == "" {
			continue
		}
		h.tally.Observe(vcs.User{Name: commit.Author.Name, Email: commit.Author.Email}, commit.Author.When)
	}
	slog.Debug("history walked",
		slog.Int("commits", h.commits),
		slog.Int("identities", h.tally.Len()),
	)
	return h, nil
}
