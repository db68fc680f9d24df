package datastore

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ma202004gh/jp-wage-dashboard/internal/model"
)

func TestDataStore_ControlDomains(t *testing.T) {
	t.Parallel()

	ds := New(
		nil,
		[]model.CategoryRow{
			{Year: 2019, Category: "建設業", Age: model.AllAges},
			{Year: 2018, Category: "建設業", Age: model.AllAges},
			{Year: 2019, Category: "製造業", Age: model.AllAges},
		},
		[]model.PrefectureRow{
			{Year: 2019, Prefecture: "東京都", Age: model.AllAges},
			{Year: 2019, Prefecture: "東京都", Age: "20-24歳"},
			{Year: 2019, Prefecture: "大阪府", Age: model.AllAges},
			{Year: 2018, Prefecture: "東京都", Age: model.AllAges},
		},
		nil,
	)

	if diff := cmp.Diff([]string{"東京都", "大阪府"}, ds.Prefectures()); diff != "" {
		t.Fatalf("prefectures mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2019, 2018}, ds.CategoryYears()); diff != "" {
		t.Fatalf("years mismatch (-want +got):\n%s", diff)
	}
}

func TestDataStore_CopiesInput(t *testing.T) {
	t.Parallel()

	coords := []model.Coordinate{{Prefecture: "東京都", Longitude: 139.69, Latitude: 35.69}}
	ds := New(nil, nil, nil, coords)
	coords[0].Prefecture = "changed"

	if ds.Coordinates()[0].Prefecture != "東京都" {
		t.Fatalf("DataStore shares caller slice")
	}
}
