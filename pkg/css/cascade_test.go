package css

import (
	"errors"
	"testing"

	"l14lite/pkg/html"
)

func styleOf(t *testing.T, tree *html.Tree, tag string) map[string]string {
	t.Helper()
	id := tree.Find(tag)
	if id == html.NoNode {
		t.Fatalf("no <%s> in tree", tag)
	}
	return tree.Node(id).Style
}

func TestResolve_NilRules(t *testing.T) {
	tree := html.Parse("<p>x</p>")
	if err := Resolve(tree, nil); !errors.Is(err, ErrNoCascade) {
		t.Fatalf("expected ErrNoCascade, got %v", err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	tree := html.Parse("<p>x</p>")
	if err := Resolve(tree, []Rule{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range []html.NodeID{tree.Root, tree.Find("p")} {
		style := tree.Node(id).Style
		for prop, want := range InheritedProperties {
			if style[prop] != want {
				t.Errorf("%s: expected %s=%s, got %q", tree.Node(id).TagName, prop, want, style[prop])
			}
		}
	}
}

func TestResolve_SpecificityBeatsSourceOrder(t *testing.T) {
	tree := html.Parse("<div><p>x</p></div>")
	rules := ParseStyleSheet("div p {color:blue} p {color:red}")
	if err := Resolve(tree, rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := styleOf(t, tree, "p")["color"]; got != "blue" {
		t.Errorf("expected blue, got %q", got)
	}
}

func TestResolve_DescendantRule(t *testing.T) {
	tree := html.Parse("<div><p>x</p></div>")
	rules := ParseStyleSheet("p {color:red} div p {color:blue}")
	if err := Resolve(tree, rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := tree.Find("p")
	if got := tree.Node(p).Style["color"]; got != "blue" {
		t.Errorf("expected blue, got %q", got)
	}
	text := tree.Children(p)[0]
	if got := tree.Node(text).Style["color"]; got != "blue" {
		t.Errorf("text should inherit blue, got %q", got)
	}
}

func TestResolve_LaterRuleWinsTie(t *testing.T) {
	tree := html.Parse("<p>x</p>")
	rules := ParseStyleSheet("p {color:red} p {color:green}")
	if err := Resolve(tree, rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := styleOf(t, tree, "p")["color"]; got != "green" {
		t.Errorf("expected green, got %q", got)
	}
}

func TestResolve_FontSizePercent(t *testing.T) {
	tree := html.Parse("<p>x</p>")
	if err := Resolve(tree, ParseStyleSheet("p {font-size:50%}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := styleOf(t, tree, "p")["font-size"]; got != "8px" {
		t.Errorf("expected 8px, got %q", got)
	}
}

func TestResolve_NestedPercentCompounds(t *testing.T) {
	tree := html.Parse("<div><p>x</p></div>")
	if err := Resolve(tree, ParseStyleSheet("div {font-size:50%} p {font-size:50%}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := styleOf(t, tree, "p")["font-size"]; got != "4px" {
		t.Errorf("expected 4px, got %q", got)
	}
}

func TestResolve_UnresolvableUnitDropped(t *testing.T) {
	tree := html.Parse("<p>x</p>")
	if err := Resolve(tree, ParseStyleSheet("p {font-size:20px} p {font-size:2em}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := styleOf(t, tree, "p")["font-size"]; got != "20px" {
		t.Errorf("expected earlier value 20px to survive, got %q", got)
	}
}

func TestResolve_InlineStyleOverridesCascade(t *testing.T) {
	tree := html.Parse(`<div><p style="color:green">x</p></div>`)
	rules := ParseStyleSheet("div p {color:blue}")
	if err := Resolve(tree, rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := styleOf(t, tree, "p")["color"]; got != "green" {
		t.Fatalf("expected green, got %q", got)
	}

	tree.SetAttribute(tree.Find("p"), "style", "color:purple")
	if err := Resolve(tree, rules); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := styleOf(t, tree, "p")["color"]; got != "purple" {
		t.Errorf("expected purple after restyle, got %q", got)
	}
}

func TestResolve_NonInheritedPropertyStaysPut(t *testing.T) {
	tree := html.Parse("<div><p>x</p></div>")
	if err := Resolve(tree, ParseStyleSheet("div {background-color:red}")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := styleOf(t, tree, "div")["background-color"]; got != "red" {
		t.Errorf("expected red on div, got %q", got)
	}
	if _, ok := styleOf(t, tree, "p")["background-color"]; ok {
		t.Error("background-color must not be inherited")
	}
}

func TestSortRules_Stable(t *testing.T) {
	rules := ParseStyleSheet("div p {color:a} p {color:b} span {color:c}")
	sorted := SortRules(rules)

	var got []string
	for _, r := range sorted {
		got = append(got, r.Declarations["color"])
	}
	want := []string{"b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if rules[0].Declarations["color"] != "a" {
		t.Error("SortRules must not reorder its input")
	}
}

func TestComputeValue(t *testing.T) {
	parent := map[string]string{"font-size": "20px"}
	tests := []struct {
		prop, val string
		want      string
		ok        bool
	}{
		{"font-size", "150%", "30px", true},
		{"font-size", "12px", "12px", true},
		{"font-size", "1.5em", "", false},
		{"font-size", "large", "", false},
		{"color", "red", "red", true},
	}
	for _, tt := range tests {
		got, ok := ComputeValue(tt.prop, tt.val, parent)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ComputeValue(%s, %s) = %q, %v; want %q, %v", tt.prop, tt.val, got, ok, tt.want, tt.ok)
		}
	}
}
