package backend

import (
	"bufio"
	"fmt"
	"strings"
)

func (g *gitCLI) HeadState() (hash string, headName string, ok bool, err error) {
	if g == nil || g.path == "" {
		return "", "", false, fmt.Errorf("repository root not set")
	}
	out, err := g.run("git rev-parse", true, "rev-parse", "-q", "--verify", "HEAD")
	if err != nil {
		return "", "", false, err
	}
	hash = strings.TrimSpace(out)
	if hash == "" {
		return "", "", false, nil
	}
	ref, err := g.run("git symbolic-ref", true, "symbolic-ref", "-q", "--short", "HEAD")
	if err != nil {
		return "", "", false, err
	}
	headName = strings.TrimSpace(ref)
	if headName == "" {
		headName = "HEAD"
	}
	return hash, headName, true, nil
}

func (g *gitCLI) ListRefs() ([]Ref, error) {
	if g == nil || g.path == "" {
		return nil, nil
	}
	out, err := g.run("git show-ref", true, "show-ref", "--dereference")
	if err != nil {
		return nil, err
	}
	return parseRefsFromShowRef(out)
}

func (g *gitCLI) ConfigValue(key string) (string, bool, error) {
	out, err := g.run("git config", true, "config", "--get", key)
	if err != nil {
		return "", false, err
	}
	value := strings.TrimRight(out, "\r\n")
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

func (g *gitCLI) RemoteURLs() ([]string, error) {
	out, err := g.run("git config", true, "config", "--get-regexp", `^remote\..*\.url$`)
	if err != nil {
		return nil, err
	}
	return parseRemoteURLs(out), nil
}

// parseRemoteURLs reads `git config --get-regexp` output, one
// "remote.<name>.url <url>" pair per line, keeping config order.
func parseRemoteURLs(out string) []string {
	var urls []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, url, found := strings.Cut(line, " ")
		if !found || !strings.HasPrefix(key, "remote.") {
			continue
		}
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func parseRefsFromShowRef(out string) ([]Ref, error) {
	type refEntry struct {
		hash string
		ref  string
	}

	peeledByTagRef := map[string]string{}
	var entries []refEntry

	for _, rawLine := range strings.Split(out, "\n") {
		line := strings.TrimRight(rawLine, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unexpected show-ref output line: %q", rawLine)
		}
		hash, refName := parts[0], parts[1]
		if base, peeled := strings.CutSuffix(refName, "^{}"); peeled {
			if base != "" {
				peeledByTagRef[base] = hash
			}
			continue
		}
		entries = append(entries, refEntry{hash: hash, ref: refName})
	}

	var refs []Ref
	for _, entry := range entries {
		ref := Ref{Hash: entry.hash, RefName: entry.ref}
		switch {
		case strings.HasPrefix(entry.ref, "refs/tags/"):
			ref.Kind = RefKindTag
			ref.Name = strings.TrimPrefix(entry.ref, "refs/tags/")
			if peeled, ok := peeledByTagRef[entry.ref]; ok && peeled != "" {
				ref.Hash = peeled
			}
		case strings.HasPrefix(entry.ref, "refs/heads/"):
			ref.Kind = RefKindBranch
			ref.Name = strings.TrimPrefix(entry.ref, "refs/heads/")
		case strings.HasPrefix(entry.ref, "refs/remotes/"):
			ref.Kind = RefKindRemoteBranch
			ref.Name = strings.TrimPrefix(entry.ref, "refs/remotes/")
		default:
			continue
		}
		if ref.Name == "" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
