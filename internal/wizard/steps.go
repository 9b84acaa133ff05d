package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thiagokokada/spdx-guide/internal/license"
	"github.com/thiagokokada/spdx-guide/internal/prompt"
	"github.com/thiagokokada/spdx-guide/internal/spdx"
)

const documentComment = "This document only gives licensing information about the package it was created for, not its dependencies."

type fixedPropertiesStep struct{}

func (fixedPropertiesStep) Name() string { return "fixed-properties" }

func (fixedPropertiesStep) Advance(c *Context) (Step, error) {
	s := &c.Doc.DocumentInfo
	s.AddEntry(spdx.TagSPDXVersion, spdx.Version)
	s.AddEntry(spdx.TagDataLicense, spdx.DataLicense)
	s.AddEntry(spdx.TagSPDXID, spdx.DocumentID)
	s.AddEntry(spdx.TagLicenseListVersion, license.ListVersion)
	s.AddComment("Update DocumentComment if you make further changes to this document")
	s.AddEntry(spdx.TagDocumentComment, documentComment)
	s.AddEntry(spdx.TagCreator, "Tool: "+c.Tool)
	return creatorPersonStep{}, nil
}

type creatorPersonStep struct{}

func (creatorPersonStep) Name() string { return "creator-person" }

func (creatorPersonStep) Advance(c *Context) (Step, error) {
	var configured []string
	if c.VCS != nil && c.VCS.User != nil {
		configured = append(configured, c.VCS.User.String())
	}
	items := uniqueNonEmpty(configured, c.SystemUsers())
	person, ok, err := c.selectOrInput(items,
		c.Messages.T("creator-person-prompt"),
		c.Messages.T("creator-custom-person-prompt"))
	if err != nil {
		return nil, err
	}
	if ok {
		c.Doc.DocumentInfo.AddEntry(spdx.TagCreator, "Person: "+person.value)
		c.Creators = append(c.Creators, person.value)
	}
	return creatorHasOrgStep{}, nil
}

type creatorHasOrgStep struct{}

func (creatorHasOrgStep) Name() string { return "creator-has-org" }

func (creatorHasOrgStep) Advance(c *Context) (Step, error) {
	hasOrg, err := c.Prompt.Confirm(c.Messages.T("creator-has-org-prompt"), false)
	if err != nil {
		return nil, err
	}
	if hasOrg {
		return creatorOrgStep{}, nil
	}
	return packageNameStep{}, nil
}

type creatorOrgStep struct{}

func (creatorOrgStep) Name() string { return "creator-org" }

func (creatorOrgStep) Advance(c *Context) (Step, error) {
	org, err := c.Prompt.Input(c.Messages.T("creator-org-prompt"), prompt.InputOptions{AllowEmpty: true})
	if err != nil {
		return nil, err
	}
	if org != "" {
		c.Doc.DocumentInfo.AddEntry(spdx.TagCreator, "Organization: "+org)
		c.Creators = append(c.Creators, org)
	}
	return packageNameStep{}, nil
}

type packageNameStep struct{}

func (packageNameStep) Name() string { return "package-name" }

func (packageNameStep) Advance(c *Context) (Step, error) {
	def := filepath.Base(filepath.Clean(c.Dir))
	if def == "." || def == string(filepath.Separator) {
		def = ""
	}
	name, err := c.Prompt.Input(c.Messages.T("name-prompt"), prompt.InputOptions{Default: def})
	if err != nil {
		return nil, err
	}
	c.Doc.PackageInfo.AddEntry(spdx.TagSPDXID, "SPDXRef-Package-"+spdxIDString(name))
	c.Doc.PackageInfo.AddEntry(spdx.TagPackageName, name)
	return packageVersionStep{}, nil
}

// spdxIDString replaces characters not allowed in an SPDX element ID.
func spdxIDString(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return '-'
		}
	}, s)
}

type packageVersionStep struct{}

func (packageVersionStep) Name() string { return "package-version" }

func (packageVersionStep) Advance(c *Context) (Step, error) {
	var initial string
	if c.VCS != nil {
		initial = c.VCS.LatestVersion
	}
	version, err := c.Prompt.Input(c.Messages.T("version-prompt"), prompt.InputOptions{
		Initial:    initial,
		AllowEmpty: true,
	})
	if err != nil {
		return nil, err
	}
	if version != "" {
		c.Doc.PackageInfo.AddEntry(spdx.TagPackageVersion, version)
	}
	return documentNameStep{}, nil
}

type documentNameStep struct{}

func (documentNameStep) Name() string { return "document-name" }

func (documentNameStep) Advance(c *Context) (Step, error) {
	name, ok := c.Doc.PackageInfo.First(spdx.TagPackageName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, spdx.TagPackageName)
	}
	def := name
	if version, ok := c.Doc.PackageInfo.First(spdx.TagPackageVersion); ok {
		def += "-" + version
	}
	docName, err := c.Prompt.Input(c.Messages.T("doc-name-prompt"), prompt.InputOptions{Default: def})
	if err != nil {
		return nil, err
	}
	c.Doc.DocumentInfo.AddEntry(spdx.TagDocumentName, docName)
	return documentNamespaceStep{}, nil
}

type documentNamespaceStep struct{}

func (documentNamespaceStep) Name() string { return "document-namespace" }

func (documentNamespaceStep) Advance(c *Context) (Step, error) {
	docName, ok := c.Doc.DocumentInfo.First(spdx.TagDocumentName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, spdx.TagDocumentName)
	}
	namespace := fmt.Sprintf("https://spdx.org/spdxdocs/%s-%s", docName, c.NewID())
	c.Doc.DocumentInfo.AddEntry(spdx.TagDocumentNamespace, namespace)
	return roleStep{role: Supplier}, nil
}

type declaredLicenseStep struct{}

func (declaredLicenseStep) Name() string { return "declared-license" }

func (declaredLicenseStep) Advance(c *Context) (Step, error) {
	expr, err := c.Prompt.Input(c.Messages.T("license-input-prompt"), prompt.InputOptions{
		AllowEmpty: true,
		Validate:   c.Validator.Validate,
	})
	if err != nil {
		return nil, err
	}
	if expr == "" {
		c.Doc.PackageInfo.AddComment("Edit the line below to specify a license.")
		c.Doc.PackageInfo.AddComment("DeclaredLicense: LICENSE-ID")
	} else {
		c.Doc.PackageInfo.AddEntry(spdx.TagDeclaredLicense, expr)
	}
	return askVerificationCodeStep{}, nil
}

type askVerificationCodeStep struct{}

func (askVerificationCodeStep) Name() string { return "ask-verification-code" }

func (askVerificationCodeStep) Advance(c *Context) (Step, error) {
	want, err := c.Prompt.Confirm(c.Messages.T("ask-verif-code"), false)
	if err != nil {
		return nil, err
	}
	if want {
		return verificationCodeStep{}, nil
	}
	return createFileStep{}, nil
}

// verificationCodeStep tells the user the code is not computed yet.
type verificationCodeStep struct{}

func (verificationCodeStep) Name() string { return "verification-code" }

func (verificationCodeStep) Advance(c *Context) (Step, error) {
	// TODO: compute the package verification code from the files in Dir
	// (SPDX 2.3 section 7.9) instead of only telling the user.
	c.println(c.Theme.Error.Render(c.Messages.T("verif-code-unimplemented")))
	return createFileStep{}, nil
}
