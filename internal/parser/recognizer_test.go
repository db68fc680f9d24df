package parser

import "testing"

func TestTableRecognizer_RESASHeaders(t *testing.T) {
	t.Parallel()

	r := NewTableRecognizer()
	cases := []struct {
		name    string
		headers []string
		want    TableKind
	}{
		{
			name:    "雇用_医療福祉_一人当たり賃金_全国_全産業.csv",
			headers: []string{"集計年", "年齢", "一人当たり賃金（万円）", "所定内給与額（万円）", "年間賞与その他特別給与額（万円）"},
			want:    TableNationalByIndustry,
		},
		{
			name:    "雇用_医療福祉_一人当たり賃金_全国_大分類.csv",
			headers: []string{"集計年", "産業大分類コード", "産業大分類名", "年齢", "一人当たり賃金（万円）", "所定内給与額（万円）", "年間賞与その他特別給与額（万円）"},
			want:    TableNationalByCategory,
		},
		{
			name:    "雇用_医療福祉_一人当たり賃金_都道府県_全産業.csv",
			headers: []string{"集計年", "都道府県コード", "都道府県名", "年齢", "一人当たり賃金（万円）"},
			want:    TablePrefectureByIndustry,
		},
		{
			name:    "pref_lat_lon.csv",
			headers: []string{"pref_name", "lat", "lon"},
			want:    TableCoordinates,
		},
		{
			name:    "unrelated.csv",
			headers: []string{"id", "name", "memo"},
			want:    TableUnknown,
		},
	}

	for _, tc := range cases {
		res := r.Recognize(tc.name, tc.headers)
		if res.Kind != tc.want {
			t.Fatalf("%s kind mismatch: got=%s conf=%.2f want=%s", tc.name, res.Kind, res.Confidence, tc.want)
		}
	}
}

func TestColumnMapper_RenamesPrefName(t *testing.T) {
	t.Parallel()

	m := NewColumnMapper().Map([]string{"pref_name", "lat", "lon"})
	got, ok := m[FieldPrefecture]
	if !ok {
		t.Fatalf("pref_name not mapped")
	}
	if got.ColumnIndex != 0 {
		t.Fatalf("unexpected column index: %d", got.ColumnIndex)
	}
	if m[FieldLongitude].ColumnIndex != 2 || m[FieldLatitude].ColumnIndex != 1 {
		t.Fatalf("unexpected lon/lat mapping: %+v", m)
	}
}
