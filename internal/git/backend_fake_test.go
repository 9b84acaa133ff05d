package git

import (
	"errors"
	"io"

	gitbackend "github.com/thiagokokada/spdx-guide/internal/git/backend"
)

type fakeBackend struct {
	repoPath string

	headStateFunc      func() (hash string, headName string, ok bool, err error)
	listRefsFunc       func() ([]gitbackend.Ref, error)
	startLogStreamFunc func(fromHash string) (gitbackend.LogStream, error)
	config             map[string]string
	configErr          error
	remoteURLsFunc     func() ([]string, error)

	lastLogFrom string
}

func (f *fakeBackend) RepoPath() string { return f.repoPath }

func (f *fakeBackend) HeadState() (hash string, headName string, ok bool, err error) {
	if f.headStateFunc != nil {
		return f.headStateFunc()
	}
	return "", "", false, nil
}

func (f *fakeBackend) ListRefs() ([]gitbackend.Ref, error) {
	if f.listRefsFunc != nil {
		return f.listRefsFunc()
	}
	return nil, nil
}

func (f *fakeBackend) StartLogStream(fromHash string) (gitbackend.LogStream, error) {
	f.lastLogFrom = fromHash
	if f.startLogStreamFunc != nil {
		return f.startLogStreamFunc(fromHash)
	}
	return nil, errors.New("unexpected StartLogStream call")
}

func (f *fakeBackend) ConfigValue(key string) (string, bool, error) {
	if f.configErr != nil {
		return "", false, f.configErr
	}
	v, ok := f.config[key]
	return v, ok, nil
}

func (f *fakeBackend) RemoteURLs() ([]string, error) {
	if f.remoteURLsFunc != nil {
		return f.remoteURLsFunc()
	}
	return nil, nil
}

type fakeLogStream struct {
	commits []*gitbackend.Commit
	err     error // returned once commits are exhausted, instead of io.EOF
	closed  bool
}

func (s *fakeLogStream) Next() (*gitbackend.Commit, error) {
	if len(s.commits) == 0 {
		if s.err != nil {
			return nil, s.err
		}
		return nil, io.EOF
	}
	c := s.commits[0]
	s.commits = s.commits[1:]
	return c, nil
}

func (s *fakeLogStream) Close() error {
	s.closed = true
	return nil
}
