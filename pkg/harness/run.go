package harness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/QYUbit/rectoverlap/pkg/geom"
	"github.com/QYUbit/rectoverlap/pkg/overlap"
	"github.com/olekukonko/tablewriter"
)

type Row struct {
	Case   Case            `json:"case"`
	Got    Expect          `json:"got"`
	Pass   bool            `json:"pass"`
	Result *overlap.Result `json:"result,omitempty"`
	Err    string          `json:"error,omitempty"`
}

type Report struct {
	Rows   []Row `json:"rows"`
	Passed int   `json:"passed"`
	Failed int   `json:"failed"`
}

// Run evaluates every case on at most workers goroutines.
func Run(ctx context.Context, e overlap.Evaluator, cases []Case, workers int) (Report, error) {
	rows := make([]Row, len(cases))
	pending := make([]int, 0, len(cases))
	queries := make([]overlap.Query, 0, len(cases))

	for i, c := range cases {
		rows[i].Case = c
		q, err := overlap.ParseArgs(c.Args)
		if err != nil {
			rows[i].Got = ExpectMalformed
			rows[i].Err = err.Error()
			continue
		}
		pending = append(pending, i)
		queries = append(queries, q)
	}

	outcomes, err := overlap.EvaluateBatch(ctx, e, queries, workers)
	if err != nil {
		return Report{}, err
	}

	for j, o := range outcomes {
		row := &rows[pending[j]]
		if o.Err != nil {
			row.Got = classify(o.Err)
			row.Err = o.Err.Error()
			continue
		}
		res := o.Result
		row.Result = &res
		row.Got = Expect(res.Verdict)
	}

	var report Report
	for i := range rows {
		rows[i].Pass = rows[i].Got == rows[i].Case.Expect
		if rows[i].Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	report.Rows = rows
	return report, nil
}

func classify(err error) Expect {
	switch {
	case errors.Is(err, overlap.ErrMalformedInput):
		return ExpectMalformed
	case errors.Is(err, geom.ErrInvalidDimension),
		errors.Is(err, geom.ErrInvalidRotation),
		errors.Is(err, geom.ErrInvalidCenter):
		return ExpectInvalid
	default:
		return Expect("error")
	}
}

func (r Report) OK() bool {
	return r.Failed == 0
}

// WriteTable renders one line per case.
func (r Report) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"#", "CASE", "ARGS", "EXPECT", "GOT", "STATUS"})

	for i, row := range r.Rows {
		status := "PASS"
		if !row.Pass {
			status = "FAIL"
		}
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			row.Case.Name,
			strings.Join(row.Case.Args, " "),
			string(row.Case.Expect),
			string(row.Got),
			status,
		})
	}
	table.SetFooter([]string{"", "", "", "", "PASSED", fmt.Sprintf("%d/%d", r.Passed, len(r.Rows))})
	table.Render()
}

func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
