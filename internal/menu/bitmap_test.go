package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBitmap_Dimensions(t *testing.T) {
	t.Parallel()

	b := NewBitmap(0, -3)
	assert.Equal(t, 1, b.Width())
	assert.Equal(t, 1, b.Height())

	b = NewBitmap(10, 4)
	assert.Equal(t, 10, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, []string{"", "", "", ""}, b.Lines())
}

func TestBitmap_DrawText_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		x, y     int
		text     string
		expected []string
	}{
		{"Success_Origin", 0, 0, "abc", []string{"abc", ""}},
		{"Success_Offset", 2, 1, "ab", []string{"", "  ab"}},
		{"Success_ClipRight", 3, 0, "abcdef", []string{"   ab", ""}},
		{"Success_ClipLeft", -2, 0, "abcd", []string{"cd", ""}},
		{"Success_RowOutside", 0, 5, "abc", []string{"", ""}},
		{"Success_Unicode", 0, 0, "日本", []string{"日本", ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := NewBitmap(5, 2)
			b.DrawText(tc.x, tc.y, tc.text)
			assert.Equal(t, tc.expected, b.Lines())
		})
	}
}

func TestBitmap_InvertRow(t *testing.T) {
	t.Parallel()

	b := NewBitmap(3, 2)
	b.InvertRow(1)

	for x := range 3 {
		assert.False(t, b.IsInverted(x, 0))
		assert.True(t, b.IsInverted(x, 1))
	}

	b.InvertRow(1)
	assert.False(t, b.IsInverted(0, 1), "second inversion should toggle back")

	b.InvertRow(7)
	assert.False(t, b.IsInverted(9, 9))
}

func TestBitmap_DrawGauge_Table(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		fraction float64
		expected string
	}{
		{"Success_Empty", 0, "----------"},
		{"Success_Half", 0.5, "#####-----"},
		{"Success_Full", 1, "##########"},
		{"Success_ClampLow", -1, "----------"},
		{"Success_ClampHigh", 3, "##########"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			b := NewBitmap(10, 1)
			b.DrawGauge(0, tc.fraction)
			require.Len(t, b.Lines(), 1)
			assert.Equal(t, tc.expected, b.Lines()[0])
		})
	}
}

func TestBitmap_String(t *testing.T) {
	t.Parallel()

	b := NewBitmap(4, 2)
	b.DrawText(0, 0, "ab")
	b.DrawText(0, 1, "cd")

	assert.Equal(t, "ab\ncd", b.String())
}

func TestBitmap_Cell(t *testing.T) {
	t.Parallel()

	b := NewBitmap(3, 1)
	b.DrawText(0, 0, "xyz")

	assert.Equal(t, 'y', b.Cell(1, 0))
	assert.Equal(t, ' ', b.Cell(5, 0))
	assert.Equal(t, ' ', b.Cell(0, -1))
}
