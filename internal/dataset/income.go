package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rgehrsitz/lifeclock/internal/domain"
)

// IncomeTable is the validated income-percentile table.
type IncomeTable struct {
	rows  []domain.IncomeLifeExpectancy
	byKey map[incomeKey]domain.IncomeLifeExpectancy
}

type incomeKey struct {
	code       string
	percentile int
}

// Lookup returns the row for a gender code ("M" or "F") and percentile.
func (t *IncomeTable) Lookup(code string, percentile int) (domain.IncomeLifeExpectancy, bool) {
	if t == nil {
		return domain.IncomeLifeExpectancy{}, false
	}
	row, ok := t.byKey[incomeKey{code, percentile}]
	return row, ok
}

// Rows returns the rows ordered by gender code then percentile.
func (t *IncomeTable) Rows() []domain.IncomeLifeExpectancy {
	if t == nil {
		return nil
	}
	return append([]domain.IncomeLifeExpectancy(nil), t.rows...)
}

func parseIncome(data []byte) (*IncomeTable, error) {
	if len(data) == 0 {
		return nil, errors.New("income table is empty")
	}
	records := ParseTable(string(data))
	if len(records) != IncomeRowCount {
		return nil, fmt.Errorf("expected %d rows, got %d", IncomeRowCount, len(records))
	}

	table := &IncomeTable{
		rows:  make([]domain.IncomeLifeExpectancy, 0, len(records)),
		byKey: make(map[incomeKey]domain.IncomeLifeExpectancy, len(records)),
	}
	for i, rec := range records {
		row, err := incomeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		key := incomeKey{row.GenderCode, row.Percentile}
		if _, dup := table.byKey[key]; dup {
			return nil, fmt.Errorf("row %d: duplicate entry %s-%d", i+1, row.GenderCode, row.Percentile)
		}
		table.byKey[key] = row
		table.rows = append(table.rows, row)
	}

	sort.Slice(table.rows, func(i, j int) bool {
		if table.rows[i].GenderCode != table.rows[j].GenderCode {
			return table.rows[i].GenderCode < table.rows[j].GenderCode
		}
		return table.rows[i].Percentile < table.rows[j].Percentile
	})
	return table, nil
}

func incomeRow(rec Record) (domain.IncomeLifeExpectancy, error) {
	var row domain.IncomeLifeExpectancy

	code, ok := rec.String("gnd")
	if !ok || (code != "M" && code != "F") {
		return row, fmt.Errorf("invalid gender code %v", rec["gnd"])
	}
	pct, ok := rec.Int("pctile")
	if !ok || pct < 1 || pct > 100 {
		return row, fmt.Errorf("invalid percentile %v", rec["pctile"])
	}
	income, ok := rec.Float("hh_inc")
	if !ok {
		return row, fmt.Errorf("missing household income")
	}
	le, ok := rec.Float("le_agg")
	if !ok {
		return row, fmt.Errorf("missing life expectancy")
	}

	row.GenderCode = code
	row.Percentile = pct
	row.HouseholdIncome = income
	row.LifeExpectancy = le
	row.Count, _ = rec.Float("count")
	row.HouseholdIncomeAt40, _ = rec.Float("hh_inc_age40")
	row.RaceAdjusted, _ = rec.Float("le_raceadj")
	row.StdDev, _ = rec.Float("sd_le_agg")
	row.StdDevRaceAdjusted, _ = rec.Float("sd_le_raceadj")
	return row, nil
}
