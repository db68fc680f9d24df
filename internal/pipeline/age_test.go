package pipeline

import (
	"testing"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

func TestAgeSeries_ExcludesAllAges(t *testing.T) {
	t.Parallel()

	ds := datastore.New([]model.NationalRow{
		{Year: 2018, Age: model.AllAges, Wage: 490, ScheduledWage: 330, Bonus: 90},
		{Year: 2018, Age: "20-24歳", Wage: 250, ScheduledWage: 200, Bonus: 30},
		{Year: 2019, Age: model.AllAges, Wage: 500, ScheduledWage: 335, Bonus: 95},
		{Year: 2019, Age: "25-29歳", Wage: 320, ScheduledWage: 250, Bonus: 50},
	}, nil, nil, nil)

	rows := NewAgeDistributionAggregator(ds).AgeSeries()
	if len(rows) != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	for _, r := range rows {
		if r.Age == model.AllAges {
			t.Fatalf("sentinel leaked into age series: %+v", r)
		}
	}
	if rows[1] != (model.AgeRow{Year: 2019, Age: "25-29歳", Wage: 320, Bonus: 50, ScheduledWage: 250}) {
		t.Fatalf("row modified: %+v", rows[1])
	}
}

func TestAgeSeries_EmptyIsValid(t *testing.T) {
	t.Parallel()

	rows := NewAgeDistributionAggregator(datastore.New(nil, nil, nil, nil)).AgeSeries()
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}
