package tasks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAddRemoveList(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))

	first, err := svc.Add("write docs", "user guide")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "write docs", first.Title)
	assert.NotEmpty(t, first.Date)

	second, err := svc.Add("review PR", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "write docs", list[0].Title)
	assert.Equal(t, "review PR", list[1].Title)

	require.NoError(t, svc.Remove(first.ID))
	list = svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestAdd_TitleRequired(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))

	_, err := svc.Add("", "no title")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, svc.List())
}

func TestRemove_Unknown(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))
	assert.ErrorIs(t, svc.Remove("no-such-id"), ErrNotFound)
}

func TestList_ReturnsCopy(t *testing.T) {
	svc := NewService(zaptest.NewLogger(t))
	_, err := svc.Add("task", "")
	require.NoError(t, err)

	list := svc.List()
	list[0].Title = "tampered"

	assert.Equal(t, "task", svc.List()[0].Title)
}
