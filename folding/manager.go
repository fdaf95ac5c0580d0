package folding

import (
	"fmt"
	"sort"

	"github.com/sukechannnn/origami/document"
)

// Manager はドキュメントのフォールドセクションをオフセット順に保持する
type Manager struct {
	doc      *document.Document
	sections []*Section
}

// NewManager creates an empty fold manager for the document.
func NewManager(doc *document.Document) *Manager {
	return &Manager{doc: doc}
}

// SetDocument rebinds the manager to a new document snapshot.
// Call SetSections afterwards to install the ranges detected for it.
func (m *Manager) SetDocument(doc *document.Document) {
	m.doc = doc
}

// validRange はセクションとして登録できる範囲か判定する
func (m *Manager) validRange(start, end int) bool {
	return start >= 0 && end > start && end <= m.doc.RuneCount()
}

// Add registers a fold section for [start, end).
// Adding an already registered range returns the existing section.
func (m *Manager) Add(start, end int) (*Section, error) {
	if !m.validRange(start, end) {
		return nil, fmt.Errorf("invalid fold range [%d, %d)", start, end)
	}
	for _, s := range m.sections {
		if s.Start == start && s.End == end {
			return s, nil
		}
	}
	section := &Section{Start: start, End: end}
	m.sections = append(m.sections, section)
	m.sortSections()
	return section, nil
}

// SetSections replaces all sections with the given ranges.
// Collapsed state is carried over for ranges present in both sets.
// Ranges that do not fit the current document are skipped.
func (m *Manager) SetSections(ranges []Range) {
	collapsed := make(map[[2]int]bool, len(m.sections))
	for _, s := range m.sections {
		if s.Collapsed {
			collapsed[[2]int{s.Start, s.End}] = true
		}
	}

	sections := make([]*Section, 0, len(ranges))
	seen := make(map[[2]int]bool, len(ranges))
	for _, r := range ranges {
		if !m.validRange(r.Start, r.End) {
			continue
		}
		key := [2]int{r.Start, r.End}
		if seen[key] {
			continue
		}
		seen[key] = true
		sections = append(sections, &Section{
			Start:     r.Start,
			End:       r.End,
			Collapsed: collapsed[key],
			Title:     r.Title,
		})
	}

	m.sections = sections
	m.sortSections()
}

// sortSections は Start 昇順、同じ Start なら外側（End が大きい方）を先に並べる
func (m *Manager) sortSections() {
	sort.Slice(m.sections, func(i, j int) bool {
		if m.sections[i].Start != m.sections[j].Start {
			return m.sections[i].Start < m.sections[j].Start
		}
		return m.sections[i].End > m.sections[j].End
	})
}

// All returns the sections in offset order.
func (m *Manager) All() []*Section {
	return m.sections
}

// Count returns the number of sections.
func (m *Manager) Count() int {
	return len(m.sections)
}

// CollapsedCount returns the number of collapsed sections.
func (m *Manager) CollapsedCount() int {
	n := 0
	for _, s := range m.sections {
		if s.Collapsed {
			n++
		}
	}
	return n
}

// FoldingsContaining はオフセットを含むセクションを外側から順に返す
func (m *Manager) FoldingsContaining(offset int) []*Section {
	var result []*Section
	for _, s := range m.sections {
		if s.Start > offset {
			break
		}
		if s.Contains(offset) {
			result = append(result, s)
		}
	}
	return result
}

// InnermostAt returns the innermost section containing the offset, or nil.
func (m *Manager) InnermostAt(offset int) *Section {
	containing := m.FoldingsContaining(offset)
	if len(containing) == 0 {
		return nil
	}
	return containing[len(containing)-1]
}

// NextAtOrAfter はオフセット以降で最初に始まるセクションを返す。無ければ nil
func (m *Manager) NextAtOrAfter(offset int) *Section {
	idx := sort.Search(len(m.sections), func(i int) bool {
		return m.sections[i].Start >= offset
	})
	if idx >= len(m.sections) {
		return nil
	}
	return m.sections[idx]
}

// CollapsedStartingIn は [a, b] の範囲内で始まる折りたたみ済みセクションを返す
func (m *Manager) CollapsedStartingIn(a, b int) []*Section {
	var result []*Section
	idx := sort.Search(len(m.sections), func(i int) bool {
		return m.sections[i].Start >= a
	})
	for ; idx < len(m.sections); idx++ {
		s := m.sections[idx]
		if s.Start > b {
			break
		}
		if s.Collapsed {
			result = append(result, s)
		}
	}
	return result
}

// Toggle flips the collapsed state of the section.
func (m *Manager) Toggle(s *Section) {
	s.Collapsed = !s.Collapsed
}

// CollapseAll folds every section.
func (m *Manager) CollapseAll() {
	for _, s := range m.sections {
		s.Collapsed = true
	}
}

// ExpandAll unfolds every section.
func (m *Manager) ExpandAll() {
	for _, s := range m.sections {
		s.Collapsed = false
	}
}
