package vcs

import (
	"log/slog"
)

// User is a contributor identity. Two users are the same identity only when
// both name and email match.
type User struct {
	Name  string
	Email string // empty when unknown
}

func (u User) String() string {
	if u.Email == "" {
		return u.Name
	}
	return u.Name + " (" + u.Email + ")"
}

// Info is a read-only snapshot of what a repository knows about the project.
// It is built once before the wizard starts and never mutated afterwards.
type Info struct {
	Name string // backend name, e.g. "git"

	User *User // locally configured user, nil when unset

	ActiveAuthors []User // by commit count, descending
	OldestAuthors []User // by first-seen time in a newest-first walk, ascending

	RemoteURLs []string
	// HeadRefs holds the current branch, the nearest tag and the head commit
	// hash, each only present if it could be resolved.
	HeadRefs []string

	LatestTag     string // full ref name, e.g. refs/tags/v1.2
	LatestVersion string // LatestTag without the refs/tags/ prefix

	CommitsScanned int
}

// Repository is an opened working copy that can describe itself.
type Repository interface {
	ReadInfo() Info
}

// Opener tries to open the repository containing path. It returns an error
// when path is not managed by this kind of VCS.
type Opener func(path string) (Repository, error)

// Detect runs each opener in order and returns the snapshot of the first
// repository that opens. ok is false when no opener recognizes path.
func Detect(path string, openers ...Opener) (info *Info, ok bool) {
	for _, open := range openers {
		if open == nil {
			continue
		}
		repo, err := open(path)
		if err != nil {
			slog.Debug("vcs open", slog.String("path", path), slog.Any("error", err))
			continue
		}
		snapshot := repo.ReadInfo()
		slog.Debug("vcs detected",
			slog.String("name", snapshot.Name),
			slog.Int("commits", snapshot.CommitsScanned),
			slog.Int("active_authors", len(snapshot.ActiveAuthors)),
			slog.Int("oldest_authors", len(snapshot.OldestAuthors)),
		)
		return &snapshot, true
	}
	return nil, false
}
