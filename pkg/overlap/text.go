package overlap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/QYUbit/rectoverlap/pkg/geom"
)

const (
	overlappedLine = "Rectangles are overlapped"
	separatedLine  = "Rectangles separated"
)

const usage = `Usage:
rectoverlap x1 y1 w1 h1 r1 x2 y2 w2 h2 r2

where:
 (x1,y1) = center of rectangle 1
 w1 = width of rectangle 1
 h1 = height of rectangle 1
 r1 = rotation angle in degrees of rectangle 1
 (x2,y2) = center of rectangle 2
 w2 = width of rectangle 2
 h2 = height of rectangle 2
 r2 = rotation angle in degrees of rectangle 2
`

// WriteText renders r in the layout the plotting harness parses: the verdict
// line, then each rectangle's vertices in plain decimal.
func WriteText(w io.Writer, r Result) error {
	bw := bufio.NewWriter(w)

	if r.Overlaps {
		fmt.Fprintln(bw, overlappedLine)
	} else {
		fmt.Fprintln(bw, separatedLine)
	}
	fmt.Fprintln(bw)

	writeQuad(bw, "Rect1", r.Rect1)
	writeQuad(bw, "Rect2", r.Rect2)

	return bw.Flush()
}

func writeQuad(w io.Writer, name string, q geom.Quad) {
	fmt.Fprintf(w, "%s:\nRectangle vertices: ", name)
	for _, v := range q {
		fmt.Fprintf(w, "(%s, %s)   ", formatCoord(v.X), formatCoord(v.Y))
	}
	fmt.Fprintln(w)
}

// formatCoord never uses exponent notation and prints negative zero as 0.
func formatCoord(f float64) string {
	if f == 0 {
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func WriteUsage(w io.Writer) error {
	_, err := io.WriteString(w, usage)
	return err
}

// WriteError reports err followed by the usage block, so the harness takes
// its bad-input branch.
func WriteError(w io.Writer, err error) error {
	if _, werr := fmt.Fprintf(w, "error: %v\n", err); werr != nil {
		return werr
	}
	return WriteUsage(w)
}
