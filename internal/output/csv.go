package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rgehrsitz/lifeclock/internal/domain"
)

// CSVFormatter writes one table per report section, separated by a blank line.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	var tables [][][]string

	if r.Clock != nil {
		tables = append(tables, clockRows(*r.Clock))
	}
	if len(r.Timelines) > 0 {
		tables = append(tables, timelineRows(r.Timelines))
	}
	if len(r.Milestones) > 0 {
		tables = append(tables, milestoneRows(r.Milestones))
	}

	for i, table := range tables {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := w.WriteAll(table); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func clockRows(c ClockSummary) [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return [][]string{
		{"Field", "Value"},
		{"BirthDate", c.BirthDate.Format("2006-01-02")},
		{"LifeExpectancy", f(c.LifeExpectancy)},
		{"Source", c.Source.DatasetName + ": " + c.Source.Description},
		{"ExpectedEnd", c.ExpectedEnd.Format("2006-01-02")},
		{"LivedSeconds", strconv.FormatInt(c.Lived.TotalSeconds, 10)},
		{"RemainingYears", itoa(c.Remaining.Years)},
		{"RemainingMonths", itoa(c.Remaining.Months)},
		{"RemainingDays", itoa(c.Remaining.Days)},
		{"PercentLived", f(c.PercentLived)},
		{"OverExpectancy", strconv.FormatBool(c.OverExpectancy)},
	}
}

func timelineRows(tls []domain.TimelineData) [][]string {
	rows := [][]string{{"Granularity", "Index", "Label", "State", "Age", "Details"}}
	for _, tl := range tls {
		for _, u := range tl.Units {
			rows = append(rows, []string{
				string(tl.Granularity),
				itoa(u.Index),
				u.Label,
				u.State(),
				itoa(u.Age),
				u.DetailsText,
			})
		}
	}
	return rows
}

func milestoneRows(ms []domain.Milestone) [][]string {
	rows := [][]string{{"ID", "Type", "Label", "Count", "Description"}}
	for _, m := range ms {
		rows = append(rows, []string{m.ID, string(m.Type), m.Label, fmt.Sprint(m.Count), m.Description})
	}
	return rows
}
