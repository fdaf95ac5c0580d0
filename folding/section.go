package folding

// Section は折りたたみ可能なテキスト範囲。Start / End はルーン単位のオフセットで、
// End は折りたたまれる最後のルーンの次を指す
type Section struct {
	Start     int
	End       int
	Collapsed bool
	Title     string
}

// Contains reports whether the offset lies within the section.
// The end offset itself is treated as inside, matching how fold guides
// are anchored to the line that holds the last folded rune.
func (s *Section) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

// Placeholder returns the text shown in place of a collapsed range.
func (s *Section) Placeholder() string {
	if s.Title != "" {
		return s.Title
	}
	return "⋯"
}

// Range is a detected foldable range before it is registered.
type Range struct {
	Start int
	End   int
	Title string
}
