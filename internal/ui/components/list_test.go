package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListNewList(t *testing.T) {
	list := NewList(10)
	assert.Equal(t, 10, list.PageSize)
	assert.Equal(t, 0, list.Cursor)
	assert.Nil(t, list.Items)
	assert.Equal(t, 1, NewList(0).PageSize)
}

func TestListDownScrollsAtPageEnd(t *testing.T) {
	list := NewList(3)
	list.SetItems([]string{"a", "b", "c", "d", "e"})

	list.Down()
	list.Down()
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 0, list.Offset)

	list.Down()
	assert.Equal(t, 3, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Down()
	list.Down()
	assert.Equal(t, 4, list.Cursor)
	assert.Equal(t, 2, list.Offset)
	assert.Equal(t, []string{"c", "d", "e"}, list.Visible())
}

func TestListUpScrollsAtPageStart(t *testing.T) {
	list := NewList(3)
	list.SetItems([]string{"a", "b", "c", "d", "e"})
	list.Cursor, list.Offset = 4, 2

	list.Up()
	list.Up()
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 2, list.Offset)

	list.Up()
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Up()
	list.Up()
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
}

func TestListSelectedOnEmptyList(t *testing.T) {
	list := NewList(3)
	assert.Equal(t, -1, list.Selected())
	assert.False(t, list.IsSelected(0))
	assert.Nil(t, list.Visible())
}

func TestListRefreshClampsCursor(t *testing.T) {
	list := NewList(2)
	list.SetItems([]string{"g1", "g2", "g3"})
	list.Down()
	list.Down()
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Refresh([]string{"g1", "g2"})
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Refresh(nil)
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
	assert.Equal(t, -1, list.Selected())
}

func TestListRefreshKeepsCursorWhenStillValid(t *testing.T) {
	list := NewList(5)
	list.SetItems([]string{"a", "b", "c"})
	list.Down()

	list.Refresh([]string{"a", "b", "c", "d"})
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, 4, list.Len())
}

func TestListRelToAbs(t *testing.T) {
	list := NewList(2)
	list.Offset = 3
	assert.Equal(t, 4, list.RelToAbs(1))
}
