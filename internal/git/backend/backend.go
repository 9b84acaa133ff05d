package backend

// Backend abstracts read access to a git repository.
//
// The default implementation uses go-git, the CLI one shells out to the git
// executable. Callers only depend on this interface.
type Backend interface {
	RepoPath() string

	HeadState() (hash string, headName string, ok bool, err error)
	ListRefs() ([]Ref, error)
	StartLogStream(fromHash string) (LogStream, error)

	// ConfigValue looks up a merged (local over global) config key such as
	// "user.name". ok is false when the key is unset.
	ConfigValue(key string) (value string, ok bool, err error)
	RemoteURLs() ([]string, error)
}

// LogStream yields commits newest first. Next returns io.EOF at the end.
type LogStream interface {
	Next() (*Commit, error)
	Close() error
}
