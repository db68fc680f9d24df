package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

func trendStore() *datastore.DataStore {
	national := []model.NationalRow{
		{Year: 2019, Age: model.AllAges, Wage: 500},
		{Year: 2017, Age: model.AllAges, Wage: 480},
		{Year: 2018, Age: model.AllAges, Wage: 490},
		{Year: 2018, Age: "20-24歳", Wage: 250},
		{Year: 2020, Age: model.AllAges, Wage: 505},
	}
	pref := []model.PrefectureRow{
		prefRow(2018, "東京都", model.AllAges, 610),
		prefRow(2017, "東京都", model.AllAges, 600),
		prefRow(2019, "東京都", model.AllAges, 620),
		prefRow(2019, "東京都", "20-24歳", 300),
		prefRow(2016, "東京都", model.AllAges, 590),
		prefRow(2019, "沖縄県", model.AllAges, 400),
	}
	return datastore.New(national, nil, pref, testCoords)
}

func TestTrendSeries_JoinOnYear(t *testing.T) {
	t.Parallel()

	rows, err := NewTrendAggregator(trendStore()).Series("東京都")
	if err != nil {
		t.Fatalf("series: %v", err)
	}

	// 2016 只有都道府县数据、2020 只有全国数据，均被省略
	want := []model.TrendRow{
		{Year: 2017, NationalWage: 480, PrefectureWage: 600},
		{Year: 2018, NationalWage: 490, PrefectureWage: 610},
		{Year: 2019, NationalWage: 500, PrefectureWage: 620},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendSeries_StrictlyAscending(t *testing.T) {
	t.Parallel()

	ds := trendStore()
	agg := NewTrendAggregator(ds)
	for _, c := range ds.Coordinates() {
		rows, err := agg.Series(c.Prefecture)
		if err != nil {
			t.Fatalf("series %s: %v", c.Prefecture, err)
		}
		for i := 1; i < len(rows); i++ {
			if rows[i].Year <= rows[i-1].Year {
				t.Fatalf("%s not strictly ascending: %+v", c.Prefecture, rows)
			}
		}
		if len(rows) > 4 {
			t.Fatalf("%s row count exceeds distinct years: %d", c.Prefecture, len(rows))
		}
	}
}

func TestTrendSeries_KnownPrefectureWithoutData(t *testing.T) {
	t.Parallel()

	rows, err := NewTrendAggregator(trendStore()).Series("北海道")
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty series, got %+v", rows)
	}
}

func TestTrendSeries_UnknownPlace(t *testing.T) {
	t.Parallel()

	_, err := NewTrendAggregator(trendStore()).Series("UnknownPlace")
	var unknown *UnknownPrefectureError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownPrefectureError, got %v", err)
	}
	if unknown.Prefecture != "UnknownPlace" {
		t.Fatalf("unexpected prefecture: %q", unknown.Prefecture)
	}
}
