package layout

import (
	"testing"

	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(name string, lines int) render.Document {
	d := render.Document{Lines: []render.Line{{Role: render.RoleHeader, Left: name, Right: "2024-11-02"}}}
	for i := 1; i < lines; i++ {
		d.Lines = append(d.Lines, render.Line{Role: render.RoleSeparator})
	}
	return d
}

func TestMetrics_Measure(t *testing.T) {
	m := Metrics{FontSize: 10}
	size := m.Measure(doc("Ravi", 5))

	assert.InDelta(t, 15*6.0, size.W, 1e-9)
	assert.InDelta(t, 5*12.0, size.H, 1e-9)
	assert.InDelta(t, DefaultFontSize*0.6, Metrics{}.CharWidth(), 1e-9)
}

func TestCompose_ThreeDocuments(t *testing.T) {
	docs := []render.Document{doc("a", 20), doc("b", 20), doc("c", 20)}
	page := Compose(docs, Full, A4, Metrics{})

	require.False(t, page.Full)
	require.Len(t, page.Slots, 4)

	names := map[Quadrant]string{}
	for _, s := range page.Filled() {
		names[s.Quadrant] = s.Document.Lines[0].Left
	}
	assert.Equal(t, map[Quadrant]string{QuadTopLeft: "a", QuadTopRight: "b", QuadBottomLeft: "c"}, names)
	assert.False(t, page.Slots[QuadBottomRight].Filled())
}

func TestCompose_QuadrantRegions(t *testing.T) {
	page := Compose([]render.Document{doc("a", 3)}, BottomRight, Size{W: 600, H: 800}, Metrics{})

	assert.Equal(t, Rect{X: 0, Y: 0, W: 300, H: 400}, page.Slots[QuadTopLeft].Region)
	assert.Equal(t, Rect{X: 300, Y: 0, W: 300, H: 400}, page.Slots[QuadTopRight].Region)
	assert.Equal(t, Rect{X: 0, Y: 400, W: 300, H: 400}, page.Slots[QuadBottomLeft].Region)
	assert.Equal(t, Rect{X: 300, Y: 400, W: 300, H: 400}, page.Slots[QuadBottomRight].Region)

	filled := page.Filled()
	require.Len(t, filled, 1)
	assert.Equal(t, QuadBottomRight, filled[0].Quadrant)
}

func TestCompose_FullPage(t *testing.T) {
	page := Compose([]render.Document{doc("a", 20)}, Full, A4, Metrics{})

	require.True(t, page.Full)
	require.Len(t, page.Slots, 1)
	assert.Equal(t, Rect{W: A4.W, H: A4.H}, page.Slots[0].Region)
	assert.True(t, page.Slots[0].Filled())
}

func TestCompose_ScaleFollowsPageSize(t *testing.T) {
	docs := []render.Document{doc("Ravi", 20)}

	small := Compose(docs, TopLeft, Size{W: 300, H: 300}, Metrics{})
	large := Compose(docs, TopLeft, Size{W: 2000, H: 3000}, Metrics{})

	s := small.Slots[QuadTopLeft].Scale
	l := large.Slots[QuadTopLeft].Scale
	assert.Less(t, s.Factor, 1.0)
	assert.Equal(t, 1.0, s.Font)
	assert.Greater(t, l.Factor, 1.0)
	assert.Equal(t, 1.0, l.Geometric)
}

func TestCompose_Empty(t *testing.T) {
	page := Compose(nil, TopLeft, A4, Metrics{})
	assert.Empty(t, page.Filled())
	assert.Len(t, page.Slots, 4)
}
