package reports

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Hours converts minutes to hours rounded to two places.
func Hours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).DivRound(sixty, 2)
}

type tally map[string]int

func (t tally) counts() []Count {
	out := make([]Count, 0, len(t))
	for key, n := range t {
		out = append(out, Count{Key: key, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

func (h Headcount) Table() Table {
	t := Table{Title: "Headcount", Columns: []string{"Dimension", "Value", "Employees"}}
	t.Rows = append(t.Rows, []string{"Total", "", strconv.Itoa(h.Total)})
	for _, group := range []struct {
		name   string
		counts []Count
	}{{"Status", h.ByStatus}, {"Department", h.ByDepartment}, {"Role", h.ByJobRole}} {
		for _, c := range group.counts {
			t.Rows = append(t.Rows, []string{group.name, c.Key, strconv.Itoa(c.Count)})
		}
	}
	return t
}

func (l LeaveSummary) Table() Table {
	t := Table{Title: "Leave Summary", Columns: []string{"Dimension", "Value", "Amount"}}
	t.Rows = append(t.Rows, []string{"Requests", "Total", strconv.Itoa(l.Total)})
	for _, c := range l.ByStatus {
		t.Rows = append(t.Rows, []string{"Requests", c.Key, strconv.Itoa(c.Count)})
	}
	for _, c := range l.ApprovedDaysByCategory {
		t.Rows = append(t.Rows, []string{"Approved days", c.Key, strconv.Itoa(c.Count)})
	}
	return t
}

func (a AttendanceSummary) Table() Table {
	t := Table{Title: "Attendance Summary", Columns: []string{"Employee", "Days Present", "Minutes", "Hours"}}
	for _, row := range a.Rows {
		t.Rows = append(t.Rows, []string{row.Name, strconv.Itoa(row.DaysPresent), strconv.Itoa(row.TotalMinutes), row.Hours.StringFixed(2)})
	}
	return t
}
