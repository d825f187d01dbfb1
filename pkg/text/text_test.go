package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/pkg/text"
)

func TestRange(t *testing.T) {
	t.Parallel()

	r := text.NewRange(2, 6)
	assert.Equal(t, text.Size(4), r.Len())
	assert.False(t, r.IsEmpty())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(6))
	assert.True(t, r.ContainsInclusive(6))
	assert.True(t, r.ContainsRange(text.NewRange(3, 6)))
	assert.False(t, r.ContainsRange(text.NewRange(3, 7)))
	assert.Equal(t, text.NewRange(0, 6), r.Cover(text.NewRange(0, 1)))
	assert.Equal(t, text.NewRange(12, 16), r.Add(10))
	assert.Equal(t, "2..6", r.String())

	inter, ok := r.Intersect(text.NewRange(4, 10))
	require.True(t, ok)
	assert.Equal(t, text.NewRange(4, 6), inter)

	_, ok = r.Intersect(text.NewRange(7, 10))
	assert.False(t, ok)

	assert.Panics(t, func() { text.NewRange(3, 2) })
}

func TestSlice(t *testing.T) {
	t.Parallel()

	src := "héllo"

	tests := []struct {
		name    string
		rng     text.Range
		want    string
		wantErr error
	}{
		{name: "ascii prefix", rng: text.NewRange(0, 1), want: "h"},
		{name: "whole multibyte char", rng: text.NewRange(1, 3), want: "é"},
		{name: "splits char", rng: text.NewRange(1, 2), wantErr: text.ErrNotCharBoundary},
		{name: "past end", rng: text.NewRange(0, 10), wantErr: text.ErrOutOfBounds},
		{name: "empty at end", rng: text.Empty(6), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := text.Slice(src, tt.rng)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSizeOf(t *testing.T) {
	t.Parallel()

	s, err := text.SizeOf(42)
	require.NoError(t, err)
	assert.Equal(t, text.Size(42), s)

	_, err = text.SizeOf(-1)
	assert.True(t, errors.Is(err, text.ErrOffsetOverflow))
}

func TestLineIndex(t *testing.T) {
	t.Parallel()

	idx := text.NewLineIndex("ab\r\ncd\ne\rf")
	assert.Equal(t, 4, idx.LineCount())

	tests := []struct {
		offset text.Size
		want   text.Position
	}{
		{0, text.Position{Line: 1, Column: 1}},
		{2, text.Position{Line: 1, Column: 3}},
		{4, text.Position{Line: 2, Column: 1}},
		{7, text.Position{Line: 3, Column: 1}},
		{9, text.Position{Line: 4, Column: 1}},
		{99, text.Position{Line: 4, Column: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.Position(tt.offset), "offset %d", tt.offset)
	}

	off, ok := idx.Offset(text.Position{Line: 2, Column: 2})
	require.True(t, ok)
	assert.Equal(t, text.Size(5), off)

	_, ok = idx.Offset(text.Position{Line: 9, Column: 1})
	assert.False(t, ok)
}

func TestWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, text.Width("hello", 2))
	assert.Equal(t, 4, text.Width("\tab", 2))
	assert.Equal(t, 4, text.Width("日本", 2))
	assert.Equal(t, 1, text.Width("é", 2))
}
