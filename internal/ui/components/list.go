package components

// List tracks a cursor and scroll offset over a number of rows. It holds
// labels only; callers keep the records the labels stand for.
type List struct {
	Items    []string
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list showing pageSize rows at a time.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// SetItems replaces the rows and moves the cursor to the top.
func (l *List) SetItems(items []string) {
	l.Items = items
	l.Cursor = 0
	l.Offset = 0
}

// Refresh replaces the rows but keeps the cursor where it was, clamped to
// the new length. Used when a reload removes or adds rows under the cursor.
func (l *List) Refresh(items []string) {
	l.Items = items
	if l.Cursor >= len(items) {
		l.Cursor = max(len(items)-1, 0)
	}
	if l.Offset > l.Cursor {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.Items)
}

// Down moves the cursor down, scrolling if needed.
func (l *List) Down() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
		if l.Cursor >= l.Offset+l.PageSize {
			l.Offset++
		}
	}
}

// Up moves the cursor up, scrolling if needed.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		if l.Cursor < l.Offset {
			l.Offset--
		}
	}
}

// Visible returns the rows on the current page.
func (l *List) Visible() []string {
	if len(l.Items) == 0 {
		return nil
	}
	end := min(l.Offset+l.PageSize, len(l.Items))
	return l.Items[l.Offset:end]
}

// Selected returns the cursor index, or -1 when the list is empty.
func (l *List) Selected() int {
	if len(l.Items) == 0 {
		return -1
	}
	return l.Cursor
}

// IsSelected reports whether the absolute index is under the cursor.
func (l *List) IsSelected(absIdx int) bool {
	return len(l.Items) > 0 && absIdx == l.Cursor
}

// RelToAbs converts an index into Visible to an index into Items.
func (l *List) RelToAbs(relIdx int) int {
	return l.Offset + relIdx
}
