package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(w, h int) string {
	return strings.TrimSuffix(strings.Repeat(strings.Repeat(".", w)+"\n", h), "\n")
}

func TestPlace_Center(t *testing.T) {
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX\nXX", "AAAAA\nAAAAA\nAAAAA")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AXXAA", lines[0])
	assert.Equal(t, "AXXAA", lines[1])
	assert.Equal(t, "AAAAA", lines[2])
}

func TestPlace_TopRight(t *testing.T) {
	result := Place(Config{Width: 6, Height: 4, Position: TopRight, PadX: 1, PadY: 1}, "XX", grid(6, 4))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "......", lines[0])
	assert.Equal(t, "...XX.", lines[1])
}

func TestPlace_BottomRight(t *testing.T) {
	result := Place(Config{Width: 6, Height: 4, Position: BottomRight}, "XX\nYY", grid(6, 4))

	lines := strings.Split(result, "\n")
	assert.Equal(t, "....XX", lines[2])
	assert.Equal(t, "....YY", lines[3])
}

func TestPlace_At(t *testing.T) {
	result := Place(Config{Width: 6, Height: 3, Position: At, X: 2, Y: 2}, "Z", grid(6, 3))

	assert.Equal(t, "..Z...", strings.Split(result, "\n")[2])
}

func TestPlace_LargeForegroundClamps(t *testing.T) {
	result := Place(Config{Width: 3, Height: 3, Position: BottomRight}, "XXXXX", grid(3, 3))

	assert.Equal(t, "XXXXX", strings.Split(result, "\n")[2])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 4, Height: 3, Position: BottomRight}, "X", "")

	lines := strings.Split(result, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "   X", lines[2])
}

func TestPlace_EmptyForeground(t *testing.T) {
	assert.Equal(t, "bg", Place(Config{Width: 2, Height: 1}, "", "bg"))
}

func TestPlace_PreservesANSI(t *testing.T) {
	bg := "\x1b[31mAAAAAA\x1b[0m"
	result := Place(Config{Width: 6, Height: 1, Position: At, X: 2}, "XX", bg)

	assert.Contains(t, result, "\x1b[31m")
	assert.Equal(t, "AAXXAA", ansi.Strip(result))
}
