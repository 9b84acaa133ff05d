package wizard

import (
	"errors"

	"github.com/thiagokokada/spdx-guide/internal/prompt"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
)

type downloadLocationStep struct{}

func (downloadLocationStep) Name() string { return "download-location" }

func (downloadLocationStep) Advance(c *Context) (Step, error) {
	var remotes []string
	if c.VCS != nil {
		remotes = c.VCS.RemoteURLs
	}
	items := append(append([]string(nil), remotes...),
		c.Messages.T("nowhere"),
		c.Messages.T("no-assertion"),
		c.Messages.T("other"))

	idx, err := c.Prompt.Select(c.Messages.T("download-select-prompt"), items, 0)
	if errors.Is(err, prompt.ErrNoSelection) {
		// A download location is mandatory, so ask again.
		return downloadLocationStep{}, nil
	}
	if err != nil {
		return nil, err
	}
	switch offset := len(remotes); {
	case idx < offset:
		return downloadRevisionStep{baseURL: remotes[idx]}, nil
	case idx == offset:
		c.Doc.PackageInfo.AddEntry(spdx.TagDownloadLocation, spdx.None)
	case idx == offset+1:
		c.Doc.PackageInfo.AddEntry(spdx.TagDownloadLocation, spdx.NoAssertion)
	default:
		return downloadOtherStep{}, nil
	}
	return declaredLicenseStep{}, nil
}

// downloadRevisionStep pins a repository URL to a revision, producing
// "<vcs>+<url>[@<rev>]".
type downloadRevisionStep struct {
	baseURL string
}

func (downloadRevisionStep) Name() string { return "download-revision" }

func (s downloadRevisionStep) Advance(c *Context) (Step, error) {
	if c.VCS == nil {
		return declaredLicenseStep{}, nil
	}
	rev, ok, err := c.selectOrInput(c.VCS.HeadRefs,
		c.Messages.T("download-rev-select-prompt"),
		c.Messages.T("download-rev-input-prompt"))
	if err != nil {
		return nil, err
	}
	location := c.VCS.Name + "+" + s.baseURL
	if ok {
		location += "@" + rev.value
	}
	c.Doc.PackageInfo.AddEntry(spdx.TagDownloadLocation, location)
	return declaredLicenseStep{}, nil
}

type downloadOtherStep struct{}

func (downloadOtherStep) Name() string { return "download-other" }

func (downloadOtherStep) Advance(c *Context) (Step, error) {
	url, err := c.Prompt.Input(c.Messages.T("other-download-prompt"), prompt.InputOptions{})
	if err != nil {
		return nil, err
	}
	c.Doc.PackageInfo.AddEntry(spdx.TagDownloadLocation, url)
	return declaredLicenseStep{}, nil
}
