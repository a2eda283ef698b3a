// Package harness replays a fixed set of rectangle pairs through the overlap
// evaluator and reports which ones match their expected verdict.
package harness

import "strconv"

type Expect string

const (
	ExpectOverlap   Expect = "overlap"
	ExpectSeparated Expect = "separated"
	ExpectMalformed Expect = "malformed"
	ExpectInvalid   Expect = "invalid"
)

// Case is one harness invocation. Args are passed to overlap.ParseArgs
// verbatim so malformed input can be exercised too.
type Case struct {
	Name   string   `json:"name"`
	Args   []string `json:"args"`
	Expect Expect   `json:"expect"`
}

func vector(name string, expect Expect, v ...float64) Case {
	args := make([]string, len(v))
	for i, f := range v {
		args[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return Case{Name: name, Args: args, Expect: expect}
}

// Vectors returns the plotting harness' pairs in their original order,
// followed by boundary and bad-input cases.
func Vectors() []Case {
	return []Case{
		vector("rotated bar corner in square", ExpectOverlap, 2, 4.5, 2, 2, 0, 2.5, 6, 4, 2, 45),
		vector("diamond under bar", ExpectSeparated, 5, 7, 4, 2, 0, 5, 4, 2, 2, 45),
		vector("tilted bar beside square", ExpectSeparated, 4, 6, 4, 2, 45, 6, 4, 2, 2, 0),
		vector("rotated bar corner in square shifted", ExpectOverlap, 2, 4.5, 2, 2, 0, 2, 6, 4, 2, 45),
		vector("far apart squares", ExpectSeparated, 1, 1, 1, 1, 0, 5, 5, 1, 1, 0),
		vector("axis aligned overlap", ExpectOverlap, 4, 4, 4, 4, 0, 7, 4, 4, 4, 0),
		vector("tilted bar beside square again", ExpectSeparated, 4, 6, 4, 2, 45, 6, 4, 2, 2, 0),
		vector("parallel bars at 20", ExpectSeparated, 4, 6, 4, 2, 20, 6, 4, 4, 2, 20),
		vector("parallel bars at -70", ExpectOverlap, 4, 6, 4, 2, -70, 6, 4, 4, 2, -70),
		vector("parallel bars at -70 raised", ExpectOverlap, 4, 7, 4, 2, -70, 6, 4, 4, 2, -70),
		vector("parallel bars at -70 apart", ExpectSeparated, 4, 8, 4, 2, -70, 6, 4, 4, 2, -70),
		vector("diamond under bar again", ExpectSeparated, 5, 7, 4, 2, 0, 5, 4, 2, 2, 45),
		vector("tilted bar over square", ExpectOverlap, 4, 6, 4, 2, 45, 6, 5, 2, 2, 0),
		vector("parallel at 45", ExpectSeparated, 4, 6, 4, 2, 45, 6, 5, 2, 2, 45),
		vector("45 against 35", ExpectOverlap, 4, 6, 4, 2, 45, 6, 5, 2, 2, 35),
		vector("small inside large", ExpectOverlap, 5, 5, 2, 2, 0, 5, 5, 4, 4, 0),
		vector("large around small", ExpectOverlap, 5, 5, 4, 4, 0, 5, 5, 2, 2, 0),
		vector("30 against 60", ExpectOverlap, 4, 6, 4, 2, 30, 6, 5, 2, 2, 60),
		vector("square beside tilted bar", ExpectSeparated, 6, 4, 2, 2, 0, 4, 6, 4, 2, 45),
		vector("square right of tilted bar", ExpectSeparated, 6, 4, 2, 2, 0, 2, 6, 4, 2, 45),
		vector("square below tilted bar", ExpectSeparated, 2, 0.6, 2, 2, 0, 2, 6, 4, 2, 45),

		vector("shared edge", ExpectSeparated, 4, 4, 4, 4, 0, 8, 4, 4, 4, 0),
		vector("shared corner", ExpectSeparated, 0, 0, 2, 2, 0, 2, 2, 2, 2, 0),
		vector("point inside square", ExpectOverlap, 5, 5, 0, 0, 0, 5, 5, 4, 4, 0),
		vector("full turn", ExpectOverlap, 4, 4, 4, 4, 360, 7, 4, 4, 4, -720),
		{Name: "letter for y1", Args: []string{"5", "y", "4", "4", "0", "5", "5", "2", "2", "0"}, Expect: ExpectMalformed},
		{Name: "blank x2", Args: []string{"6", "4", "2", "2", "0", " ", "6", "4", "2", "45"}, Expect: ExpectMalformed},
		{Name: "missing parameter", Args: []string{"6", "4", "2", "2", "0", "6", "4", "2", "45"}, Expect: ExpectMalformed},
		vector("negative width", ExpectInvalid, 1, 1, -1, 1, 0, 5, 5, 1, 1, 0),
		{Name: "nan rotation", Args: []string{"1", "1", "1", "1", "NaN", "5", "5", "1", "1", "0"}, Expect: ExpectInvalid},
	}
}
