package paint

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14lite/pkg/css"
	"l14lite/pkg/html"
	"l14lite/pkg/layout"
	"l14lite/pkg/text"
)

type wideMetrics struct{}

func (wideMetrics) Font(text.FontKey) text.Face { return wideFace{} }

type wideFace struct{}

func (wideFace) Measure(s string) float64 {
	if s == " " {
		return 5
	}
	return 60
}

func (wideFace) Metrics() text.Metrics {
	return text.Metrics{Ascent: 8, Descent: 2, Linespace: 10}
}

func displayList(t *testing.T, src string, width float64) []Command {
	t.Helper()
	tree := html.Parse(src)
	require.NoError(t, css.Resolve(tree, css.DefaultStyleSheet()))
	doc, err := layout.NewEngine(wideMetrics{}).Layout(tree, width)
	require.NoError(t, err)
	return DisplayList(doc)
}

func TestDisplayList_TwoLines(t *testing.T) {
	cmds := displayList(t, "<p>aaa bbb</p>", 100)

	require.Len(t, cmds, 2)
	first, ok := cmds[0].(DrawText)
	require.True(t, ok)
	second, ok := cmds[1].(DrawText)
	require.True(t, ok)
	assert.Equal(t, "aaa", first.Text)
	assert.Equal(t, "bbb", second.Text)
	assert.NotEqual(t, first.Y, second.Y)
}

func TestDisplayList_TextCommand(t *testing.T) {
	cmds := displayList(t, `<p style="color:red">aaa</p>`, 800)

	want := []Command{DrawText{
		X:      layout.HStep,
		Y:      layout.VStep + 2,
		Text:   "aaa",
		Font:   text.FontKey{Size: 16, Weight: "normal", Style: "normal"},
		Color:  "red",
		Right:  layout.HStep + 60,
		Bottom: layout.VStep + 12,
	}}
	if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayList_BackgroundBeforeContent(t *testing.T) {
	cmds := displayList(t, `<div style="background-color:yellow"><p>aaa</p></div>`, 800)

	require.Len(t, cmds, 2)
	rect, ok := cmds[0].(DrawRect)
	require.True(t, ok, "first command should be the background")
	assert.Equal(t, "yellow", rect.Color)
	assert.Equal(t, float64(layout.HStep), rect.X1)
	assert.Equal(t, float64(800-layout.HStep), rect.X2)
	assert.Equal(t, 12.5, rect.Y2-rect.Y1)
	_, ok = cmds[1].(DrawText)
	assert.True(t, ok)
}

func TestDisplayList_TransparentBackgroundSkipped(t *testing.T) {
	cmds := displayList(t, `<div style="background-color:transparent">aaa</div><div style="background-color:nonsense">bbb</div>`, 800)

	for _, c := range cmds {
		if _, ok := c.(DrawRect); ok {
			t.Errorf("unexpected rect %+v", c)
		}
	}
	assert.Len(t, cmds, 2)
}

func TestDisplayList_Nil(t *testing.T) {
	assert.Empty(t, DisplayList(nil))
}

func TestVisible(t *testing.T) {
	cmd := DrawRect{X1: 0, Y1: 100, X2: 10, Y2: 150}

	assert.True(t, Visible(cmd, 0, 600))
	assert.True(t, Visible(cmd, 120, 600))
	assert.False(t, Visible(cmd, 200, 600))
	assert.False(t, Visible(cmd, -600, 500))
}
