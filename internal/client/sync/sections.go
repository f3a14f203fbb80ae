package sync

import (
	"fmt"
	"strings"
)

const (
	// HeaderSection holds everything before the first heading.
	HeaderSection = "__header__"

	headingPrefix = "## "
)

// DefaultSectionOrder is the canonical ordering used when reconstructing a
// journal entry. Sections not in this list are appended after, in the order
// they were first seen.
var DefaultSectionOrder = []string{
	"Priorities",
	"Backlog",
	"In Progress",
	"Completed",
	"Notes",
}

// Sections is an insertion-ordered map of section name to block text.
// Block text includes the heading line itself, verbatim.
type Sections struct {
	names  []string
	blocks map[string]string
}

func NewSections() *Sections {
	return &Sections{
		blocks: make(map[string]string),
	}
}

// Set adds or replaces a section. New names keep insertion order.
func (s *Sections) Set(name, block string) {
	if _, ok := s.blocks[name]; !ok {
		s.names = append(s.names, name)
	}
	s.blocks[name] = block
}

func (s *Sections) Get(name string) (string, bool) {
	block, ok := s.blocks[name]
	return block, ok
}

func (s *Sections) Has(name string) bool {
	_, ok := s.blocks[name]
	return ok
}

// Names returns section names in insertion order.
func (s *Sections) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

func (s *Sections) Len() int {
	return len(s.names)
}

// ParseSections splits text into named blocks. A `## ` line starts a new
// section named by the trimmed remainder of the line; lines before the first
// heading form HeaderSection. Repeated section names make the document
// ambiguous for merging and are rejected.
func ParseSections(text string) (*Sections, error) {
	sections := NewSections()
	if text == "" {
		return sections, nil
	}

	current := HeaderSection
	var block []string
	flush := func() error {
		if current == HeaderSection && len(block) == 0 {
			return nil
		}
		if sections.Has(current) {
			return fmt.Errorf("parse sections: duplicate section %q", current)
		}
		sections.Set(current, strings.Join(block, "\n"))
		return nil
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := headingName(line); ok {
			if err := flush(); err != nil {
				return nil, err
			}
			current = name
			block = block[:0]
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return sections, nil
}

// headingName returns the section name for a heading line.
func headingName(line string) (string, bool) {
	trimmed := strings.TrimRight(line, "\r")
	if !strings.HasPrefix(trimmed, headingPrefix) {
		return "", false
	}
	name := strings.TrimSpace(trimmed[len(headingPrefix):])
	if name == "" {
		return "", false
	}
	return name, true
}

// Reconstruct reassembles the document: header first, then sections in the
// given canonical order (DefaultSectionOrder when order is nil), then any
// remaining sections in insertion order. Round-trips with ParseSections.
func (s *Sections) Reconstruct(order []string) string {
	if order == nil {
		order = DefaultSectionOrder
	}

	emitted := make(map[string]bool, s.Len())
	var parts []string
	emit := func(name string) {
		if emitted[name] {
			return
		}
		if block, ok := s.blocks[name]; ok {
			parts = append(parts, block)
			emitted[name] = true
		}
	}

	emit(HeaderSection)
	for _, name := range order {
		emit(name)
	}
	for _, name := range s.names {
		emit(name)
	}

	return strings.Join(parts, "\n")
}
