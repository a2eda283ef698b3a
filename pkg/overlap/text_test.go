package overlap

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
)

// Patterns used by the plotting harness to scrape the output.
var (
	rect1Pattern = regexp.MustCompile(`\nRect1:\nRectangle vertices: \(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)\s+\(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)\s+\(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)\s+\(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)`)
	rect2Pattern = regexp.MustCompile(`\nRect2:\nRectangle vertices: \(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)\s+\(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)\s+\(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)\s+\(([\d\.\+\-]+),\s+([\d\.\+\-]+)\)`)
	yesPattern   = regexp.MustCompile("Rectangles are overlapped\n")
	noPattern    = regexp.MustCompile("Rectangles separated\n")
	usagePattern = regexp.MustCompile("Usage")
)

func TestWriteTextSeparated(t *testing.T) {
	res, err := Evaluate(NewQuery([10]float64{4, 4, 4, 4, 0, 8, 4, 4, 4, 0}))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteText(&buf, res); err != nil {
		t.Fatal(err)
	}

	want := "Rectangles separated\n\n" +
		"Rect1:\nRectangle vertices: (2, 2)   (6, 2)   (6, 6)   (2, 6)   \n" +
		"Rect2:\nRectangle vertices: (6, 2)   (10, 2)   (10, 6)   (6, 6)   \n"
	if buf.String() != want {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteTextParsesWithHarnessPatterns(t *testing.T) {
	queries := [][10]float64{
		{2, 4.5, 2, 2, 0, 2.5, 6, 4, 2, 45},
		{4, 6, 4, 2, -70, 6, 4, 4, 2, -70},
		{0, 0, 1e-12, 3e-20, 33, -1e9, 2e9, 1, 1, 0},
	}

	for _, v := range queries {
		res, err := Evaluate(NewQuery(v))
		if err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := WriteText(&buf, res); err != nil {
			t.Fatal(err)
		}
		out := buf.String()

		if !rect1Pattern.MatchString(out) || !rect2Pattern.MatchString(out) {
			t.Errorf("Harness patterns do not match output:\n%s", out)
		}
		if yesPattern.MatchString(out) == noPattern.MatchString(out) {
			t.Errorf("Expected exactly one verdict line:\n%s", out)
		}
		if yesPattern.MatchString(out) != res.Overlaps {
			t.Errorf("Verdict line disagrees with result %v", res.Overlaps)
		}
		if usagePattern.MatchString(out) {
			t.Errorf("Valid result must not mention usage:\n%s", out)
		}
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseArgs([]string{"5", "y"})
	if err := WriteError(&buf, err); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "error: malformed input") {
		t.Errorf("Expected error line first, got %q", out)
	}
	if !usagePattern.MatchString(out) {
		t.Errorf("Expected usage block, got %q", out)
	}
}

func TestFormatCoord(t *testing.T) {
	tests := map[float64]string{
		0:                  "0",
		1.5:                "1.5",
		-2:                 "-2",
		1e-7:               "0.0000001",
		2e21:               "2000000000000000000000",
		0.7071067811865476: "0.7071067811865476",
	}
	for in, want := range tests {
		if got := formatCoord(in); got != want {
			t.Errorf("formatCoord(%v) = %q, want %q", in, got, want)
		}
	}

	var negZero float64
	negZero = -negZero
	if got := formatCoord(negZero); got != "0" {
		t.Errorf("Expected 0 for negative zero, got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteTextReportsWriteFailure(t *testing.T) {
	res, err := Evaluate(NewQuery([10]float64{0, 0, 1, 1, 0, 0, 0, 1, 1, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteText(failingWriter{}, res); err == nil {
		t.Error("Expected write error")
	}
}
