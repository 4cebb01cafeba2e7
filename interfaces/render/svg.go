package render

import (
	"fmt"
	"io"
	"strings"
)

// WriteSVG renders a frame as a standalone SVG document. Used by the
// headless export path; interactive hosts consume the Frame directly.
func WriteSVG(w io.Writer, frame *Frame) error {
	width, height := frame.Width, frame.Height
	if width <= 0 || height <= 0 {
		width, height = 800, 600
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="#fafafa"/>`+"\n")

	if frame.State == FrameEmpty {
		fmt.Fprintf(&b, `<text x="%g" y="%g" text-anchor="middle" fill="#888" font-family="sans-serif">empty graph</text>`+"\n",
			width/2, height/2)
		fmt.Fprint(&b, "</svg>\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, edge := range frame.Edges {
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#999" stroke-width="1.5"/>`+"\n",
			edge.X1, edge.Y1, edge.X2, edge.Y2)
		if edge.Label != "" {
			fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" fill="#777" font-size="10" font-family="sans-serif">%s</text>`+"\n",
				(edge.X1+edge.X2)/2, (edge.Y1+edge.Y2)/2-4, escape(edge.Label))
		}
	}

	if frame.Line != nil {
		fmt.Fprintf(&b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#4a90d9" stroke-width="1.5" stroke-dasharray="4 3"/>`+"\n",
			frame.Line.X1, frame.Line.Y1, frame.Line.X2, frame.Line.Y2)
	}

	for _, node := range frame.Nodes {
		fill := "#d9e8f5"
		stroke := "#4a90d9"
		if node.Selected {
			fill = "#ffe9b3"
			stroke = "#e0a500"
		}
		if node.Highlighted {
			stroke = "#d94a4a"
		}
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			node.X, node.Y, node.Radius, fill, stroke)
		if node.Label != "" {
			fmt.Fprintf(&b, `<text x="%.2f" y="%.2f" text-anchor="middle" fill="#333" font-size="12" font-family="sans-serif">%s</text>`+"\n",
				node.X, node.Y+node.Radius+14, escape(node.Label))
		}
	}

	fmt.Fprint(&b, "</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(s)
}
