package layout

import (
	"fmt"
	"strings"
)

// Dump renders the box tree as indented text, one box per line.
func Dump(root *Box) string {
	var sb strings.Builder
	dump(&sb, root, 0)
	return sb.String()
}

func dump(sb *strings.Builder, b *Box, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%s", b.Kind)
	switch {
	case b.Kind == TextBox:
		fmt.Fprintf(sb, " %q", b.Text)
	case b.Tag != "":
		fmt.Fprintf(sb, " <%s>", b.Tag)
	}
	fmt.Fprintf(sb, " x=%g y=%g w=%g h=%g", b.X, b.Y, b.Width, b.Height)
	if b.Kind == TextBox {
		fmt.Fprintf(sb, " font=%s color=%s", b.Font, b.Color)
	}
	sb.WriteByte('\n')
	for _, c := range b.Children {
		dump(sb, c, depth+1)
	}
}
