package parser

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"\ufeff集計年":           "集計年",
		" 一人当たり賃金 (万円)\n": "一人当たり賃金（万円）",
		"都道府県\t名":           "都道府県名",
	}
	for in, want := range cases {
		if got := NormalizeColumnName(in); got != want {
			t.Fatalf("NormalizeColumnName(%q) want=%q got=%q", in, want, got)
		}
	}
}

func TestParseYear(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"2019", "2019年", " 2019年度 "} {
		y, err := ParseYear(in)
		if err != nil {
			t.Fatalf("ParseYear(%q): %v", in, err)
		}
		if y != 2019 {
			t.Fatalf("ParseYear(%q) want=2019 got=%d", in, y)
		}
	}
	if _, err := ParseYear("令和元年"); err == nil {
		t.Fatalf("expected error for non-numeric year")
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	v, err := ParseNumber("1,234.5")
	if err != nil {
		t.Fatalf("ParseNumber: %v", err)
	}
	if v != 1234.5 {
		t.Fatalf("unexpected value: %v", v)
	}
	if _, err := ParseNumber(" "); err == nil {
		t.Fatalf("expected error for blank cell")
	}
	if _, err := ParseNumber("-"); err == nil {
		t.Fatalf("expected error for dash cell")
	}
}
