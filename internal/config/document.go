// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// HereVariable is the interpolation variable holding the directory of the
// loaded configuration file, matching the %(here)s convention of
// Paste-Deploy-style documents.
const HereVariable = "here"

// loadOptions configure go-ini for Paste-Deploy-compatible parsing:
// indented continuation lines form multi-line values, '#' starts a comment
// only at the beginning of a line, and '%' needs no escaping.
var loadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	IgnoreInlineComment:        true,
	SpaceBeforeInlineComment:   true,
}

// Document is an ordered INI configuration document. It wraps the parsed
// file together with the interpolation base directory ("here").
//
// A Document is read once at startup and treated as immutable afterwards;
// none of its methods mutate parsed state except the internal injection of
// the "here" variable at load time.
type Document struct {
	file *ini.File
	path string
	here string

	// hereInjected records that the "here" key was added by the loader
	// rather than written in the file, so serialization can omit it.
	hereInjected bool
}

// LoadDocument reads and parses the INI document at path.
//
// The directory containing path becomes the value of the %(here)s
// interpolation variable.
func LoadDocument(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error resolving config path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return LoadDocumentBytes(absPath, data)
}

// LoadDocumentBytes parses an INI document from data. The directory part of
// name is used as the %(here)s interpolation base; when name carries no
// directory, the current working directory is used.
func LoadDocumentBytes(name string, data []byte) (*Document, error) {
	if err := checkDuplicates(name, data); err != nil {
		return nil, err
	}

	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, fmt.Errorf("error parsing config document %q: %w", name, err)
	}

	here := filepath.Dir(name)
	if here == "." {
		if wd, wdErr := os.Getwd(); wdErr == nil {
			here = wd
		}
	}

	doc := &Document{file: file, path: name, here: here}
	if err := doc.injectHere(); err != nil {
		return nil, err
	}

	return doc, nil
}

// checkDuplicates scans the raw document for repeated section headers and
// repeated keys within a section before go-ini gets to merge them. Indented
// lines are value continuations and are skipped.
func checkDuplicates(name string, data []byte) error {
	seenSections := map[string]bool{}
	seenKeys := map[string]bool{}
	section := ini.DefaultSection

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' || line[0] == ';' {
			continue
		}

		if line[0] == '[' {
			end := strings.IndexByte(line, ']')
			if end < 0 {
				continue
			}
			section = line[1:end]
			if seenSections[section] {
				return fmt.Errorf("%w: %q in %q", ErrDuplicateSection, section, name)
			}
			seenSections[section] = true
			continue
		}

		sep := strings.IndexAny(line, "=:")
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		if key == "" {
			continue
		}
		qualified := section + "\x00" + key
		if seenKeys[qualified] {
			return fmt.Errorf("%w: %q in section %q of %q", ErrDuplicateKey, key, section, name)
		}
		seenKeys[qualified] = true
	}

	return nil
}

// injectHere registers the "here" variable in the DEFAULT section so that
// %(here)s placeholders resolve in every section. An explicit "here" key in
// the file wins over the injected value.
func (d *Document) injectHere() error {
	defaultSection := d.file.Section(ini.DefaultSection)
	if defaultSection.HasKey(HereVariable) {
		return nil
	}

	if _, err := defaultSection.NewKey(HereVariable, d.here); err != nil {
		return fmt.Errorf("error registering %%(here)s variable: %w", err)
	}
	d.hereInjected = true

	return nil
}

// Path returns the absolute path the document was loaded from, or the name
// passed to [LoadDocumentBytes].
func (d *Document) Path() string { return d.path }

// Here returns the interpolation base directory of the document.
func (d *Document) Here() string { return d.here }

// SectionNames returns all section names in document order, excluding the
// implicit DEFAULT section.
func (d *Document) SectionNames() []string {
	names := make([]string, 0, len(d.file.Sections()))
	for _, section := range d.file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, section.Name())
	}
	return names
}

// HasSection reports whether the document defines the named section.
func (d *Document) HasSection(name string) bool {
	_, err := d.file.GetSection(name)
	return err == nil
}

// Keys returns the key names of the named section in document order.
// A missing section yields a nil slice.
func (d *Document) Keys(section string) []string {
	s, err := d.file.GetSection(section)
	if err != nil {
		return nil
	}

	keys := s.KeyStrings()
	if section == ini.DefaultSection && d.hereInjected {
		filtered := make([]string, 0, len(keys))
		for _, k := range keys {
			if k == HereVariable {
				continue
			}
			filtered = append(filtered, k)
		}
		keys = filtered
	}

	return keys
}

// Get returns the interpolated value of section/key. The second return
// value reports whether the key exists.
func (d *Document) Get(section, key string) (string, bool) {
	s, err := d.file.GetSection(section)
	if err != nil {
		return "", false
	}
	k, err := s.GetKey(key)
	if err != nil {
		return "", false
	}
	return k.String(), true
}

// GetDefault returns the interpolated value of section/key, or fallback
// when the key is absent.
func (d *Document) GetDefault(section, key, fallback string) string {
	if v, ok := d.Get(section, key); ok {
		return v
	}
	return fallback
}

// Raw returns the uninterpolated value of section/key, with %(name)s
// placeholders left intact.
func (d *Document) Raw(section, key string) (string, bool) {
	s, err := d.file.GetSection(section)
	if err != nil {
		return "", false
	}
	k, err := s.GetKey(key)
	if err != nil {
		return "", false
	}
	return k.Value(), true
}

// WriteTo re-serializes the document. Section names, key order, and raw
// values are preserved; surrounding whitespace may be normalized. The
// loader-injected "here" variable is not written out.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.removeInjectedHere()
	defer d.restoreInjectedHere()

	return d.file.WriteTo(w)
}

// SaveTo writes the re-serialized document to path.
func (d *Document) SaveTo(path string) error {
	d.removeInjectedHere()
	defer d.restoreInjectedHere()

	return d.file.SaveTo(path)
}

func (d *Document) removeInjectedHere() {
	if d.hereInjected {
		d.file.Section(ini.DefaultSection).DeleteKey(HereVariable)
	}
}

func (d *Document) restoreInjectedHere() {
	if d.hereInjected {
		_, _ = d.file.Section(ini.DefaultSection).NewKey(HereVariable, d.here)
	}
}
