package pipeline

import (
	"errors"
	"testing"

	"github.com/ma202004gh/jp-wage-dashboard/internal/datastore"
	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

var testCoords = []model.Coordinate{
	{Prefecture: "北海道", Longitude: 141.35, Latitude: 43.06},
	{Prefecture: "東京都", Longitude: 139.69, Latitude: 35.69},
	{Prefecture: "沖縄県", Longitude: 127.68, Latitude: 26.21},
}

func prefRow(year int, pref, age string, wage float64) model.PrefectureRow {
	return model.PrefectureRow{Year: year, Prefecture: pref, Age: age, Wage: wage}
}

func TestGeoSnapshot_ThreePrefectures(t *testing.T) {
	t.Parallel()

	ds := datastore.New(nil, nil, []model.PrefectureRow{
		prefRow(2019, "北海道", model.AllAges, 200),
		prefRow(2019, "東京都", model.AllAges, 400),
		prefRow(2019, "沖縄県", model.AllAges, 600),
		prefRow(2019, "東京都", "20-24歳", 900),
		prefRow(2018, "東京都", model.AllAges, 100),
	}, testCoords)

	rows, err := NewGeoAggregator(ds).Snapshot(2019)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	want := map[string]float64{"北海道": 0.0, "東京都": 0.5, "沖縄県": 1.0}
	if len(rows) != len(want) {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	for _, r := range rows {
		if w, ok := want[r.Prefecture]; !ok || r.Weight != w {
			t.Fatalf("%s weight want=%v got=%v", r.Prefecture, w, r.Weight)
		}
		c, _ := ds.Coordinate(r.Prefecture)
		if r.Longitude != c.Longitude || r.Latitude != c.Latitude {
			t.Fatalf("%s coordinates not joined: %+v", r.Prefecture, r)
		}
	}
}

func TestGeoSnapshot_AllWagesEqual(t *testing.T) {
	t.Parallel()

	ds := datastore.New(nil, nil, []model.PrefectureRow{
		prefRow(2019, "北海道", model.AllAges, 300),
		prefRow(2019, "東京都", model.AllAges, 300),
		prefRow(2019, "沖縄県", model.AllAges, 300),
	}, testCoords)

	rows, err := NewGeoAggregator(ds).Snapshot(2019)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	for _, r := range rows {
		if r.Weight != 0 {
			t.Fatalf("%s weight want=0 got=%v", r.Prefecture, r.Weight)
		}
	}
}

func TestGeoSnapshot_UnsupportedYear(t *testing.T) {
	t.Parallel()

	ds := datastore.New(nil, nil, []model.PrefectureRow{prefRow(2019, "東京都", model.AllAges, 300)}, testCoords)

	rows, err := NewGeoAggregator(ds).Snapshot(2099)
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
	if rows != nil {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestGeoSnapshot_UnmatchedPrefectureIsIntegrityWarning(t *testing.T) {
	t.Parallel()

	ds := datastore.New(nil, nil, []model.PrefectureRow{
		prefRow(2019, "北海道", model.AllAges, 200),
		prefRow(2019, "東京都", model.AllAges, 600),
		prefRow(2019, "架空県", model.AllAges, 900),
	}, testCoords)

	rows, err := NewGeoAggregator(ds).Snapshot(2019)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("expected IntegrityError, got %v", err)
	}
	if len(integrity.Unmatched) != 1 || integrity.Unmatched[0] != "架空県" {
		t.Fatalf("unexpected unmatched: %v", integrity.Unmatched)
	}
	if len(rows) != 2 {
		t.Fatalf("partial result should keep matched rows, got %d", len(rows))
	}
	// 归一化只基于已匹配的行
	for _, r := range rows {
		if r.Prefecture == "東京都" && r.Weight != 1 {
			t.Fatalf("東京都 weight want=1 got=%v", r.Weight)
		}
	}
}

func TestGeoSnapshot_WeightBoundsAndDomain(t *testing.T) {
	t.Parallel()

	var pref []model.PrefectureRow
	wages := []float64{512.3, 498.7, 610.2}
	for _, year := range []int{2017, 2018, 2019} {
		for i, c := range testCoords {
			pref = append(pref, prefRow(year, c.Prefecture, model.AllAges, wages[i]+float64(year-2017)*7.5*float64(i)))
		}
	}
	ds := datastore.New(nil, nil, pref, testCoords)
	agg := NewGeoAggregator(ds)

	for _, year := range []int{2017, 2018, 2019} {
		rows, err := agg.Snapshot(year)
		if err != nil {
			t.Fatalf("snapshot %d: %v", year, err)
		}
		var hasZero, hasOne bool
		for _, r := range rows {
			if r.Weight < 0 || r.Weight > 1 {
				t.Fatalf("%d %s weight out of range: %v", year, r.Prefecture, r.Weight)
			}
			if !ds.HasPrefecture(r.Prefecture) {
				t.Fatalf("%d %s outside coordinate domain", year, r.Prefecture)
			}
			hasZero = hasZero || r.Weight == 0
			hasOne = hasOne || r.Weight == 1
		}
		if !hasZero || !hasOne {
			t.Fatalf("%d expected both 0 and 1 weights: %+v", year, rows)
		}
	}
}
