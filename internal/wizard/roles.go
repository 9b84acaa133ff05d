package wizard

import (
	"errors"

	"github.com/thiagokokada/spdx-guide/internal/prompt"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
	"github.com/thiagokokada/spdx-guide/internal/vcs"
)

// Role is a package party resolved through the same pick-then-classify flow.
type Role int

const (
	Supplier Role = iota
	Originator
)

func (r Role) String() string {
	if r == Originator {
		return "originator"
	}
	return "supplier"
}

// Tag is the package field the role writes.
func (r Role) Tag() string {
	if r == Originator {
		return spdx.TagPackageOriginator
	}
	return spdx.TagPackageSupplier
}

// Candidates are the ranked authors offered first: the most active ones for
// a supplier, the earliest ones for an originator.
func (r Role) Candidates(info *vcs.Info) []vcs.User {
	if info == nil {
		return nil
	}
	if r == Originator {
		return info.OldestAuthors
	}
	return info.ActiveAuthors
}

// skip is where the interview continues when the role is left out.
func (r Role) skip() Step {
	if r == Originator {
		return downloadLocationStep{}
	}
	return roleStep{role: Originator}
}

// finish is where the interview continues once the role was written.
func (r Role) finish() Step {
	if r == Originator {
		return downloadLocationStep{}
	}
	return differentOriginatorStep{}
}

type roleStep struct {
	role Role
}

func (s roleStep) Name() string { return "package-" + s.role.String() }

func (s roleStep) Advance(c *Context) (Step, error) {
	candidates := s.role.Candidates(c.VCS)
	authors := make([]string, 0, len(candidates))
	for _, u := range candidates {
		authors = append(authors, u.String())
	}
	items := uniqueNonEmpty(authors, c.Creators)
	items = append(items, c.Messages.T("no-assertion"))
	noAssertion := len(items) - 1

	picked, ok, err := c.selectOrInput(items,
		c.Messages.T("select-"+s.role.String()+"-prompt"),
		c.Messages.T("input-"+s.role.String()+"-prompt"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.role.skip(), nil
	}
	if picked.index == noAssertion {
		c.Doc.PackageInfo.AddEntry(s.role.Tag(), spdx.NoAssertion)
		return s.role.finish(), nil
	}
	return personOrOrgStep{role: s.role, name: picked.value}, nil
}

// personOrOrgStep classifies a picked name. Going back re-runs the role
// step that led here.
type personOrOrgStep struct {
	role Role
	name string
}

func (s personOrOrgStep) Name() string { return "person-or-org" }

const (
	pickPerson = iota
	pickOrganization
	pickGoBack
)

func (s personOrOrgStep) Advance(c *Context) (Step, error) {
	items := []string{c.Messages.T("person"), c.Messages.T("org"), c.Messages.T("go-back")}
	idx, err := c.Prompt.Select(c.Messages.T("ask-person-or-org", "name", s.name), items, pickPerson)
	if errors.Is(err, prompt.ErrNoSelection) {
		idx, err = pickGoBack, nil
	}
	if err != nil {
		return nil, err
	}
	switch idx {
	case pickPerson:
		c.Doc.PackageInfo.AddEntry(s.role.Tag(), "Person: "+s.name)
	case pickOrganization:
		c.Doc.PackageInfo.AddEntry(s.role.Tag(), "Organization: "+s.name)
	default:
		return roleStep{role: s.role}, nil
	}
	return s.role.finish(), nil
}

type differentOriginatorStep struct{}

func (differentOriginatorStep) Name() string { return "different-originator" }

func (differentOriginatorStep) Advance(c *Context) (Step, error) {
	different, err := c.Prompt.Confirm(c.Messages.T("ask-different-originator-prompt"), false)
	if err != nil {
		return nil, err
	}
	if different {
		return roleStep{role: Originator}, nil
	}
	return downloadLocationStep{}, nil
}
