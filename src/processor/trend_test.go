package processor

import (
	"testing"
)

func TestYearlyTotals(t *testing.T) {
	df := cleanedFrame(
		[]string{"CountryA", "CountryB", "CountryA"},
		[]int{2015, 2015, 2016},
		[]float64{100, 50, 200},
	)

	got := YearlyTotals(df)
	want := []YearAggregate{{2015, 150}, {2016, 200}}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("totals[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestYearlyTotalsSortedAscending(t *testing.T) {
	df := cleanedFrame(
		[]string{"A", "B", "C", "D"},
		[]int{2021, 2010, 2017, 2013},
		[]float64{1, 2, 3, 4},
	)

	got := YearlyTotals(df)
	for i := 1; i < len(got); i++ {
		if got[i-1].Year >= got[i].Year {
			t.Fatalf("years not ascending: %v", got)
		}
	}
}

func TestYearlyTotalsSumProperty(t *testing.T) {
	df := cleanedFrame(
		[]string{"A", "B", "A", "C", "B"},
		[]int{2015, 2015, 2016, 2017, 2017},
		[]float64{10, 20, 30, 40, 50},
	)

	var aggSum float64
	for _, ya := range YearlyTotals(df) {
		aggSum += ya.Value
	}

	s, err := Describe(df)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(aggSum, s.Sum) {
		t.Errorf("sum of yearly aggregates %v != column sum %v", aggSum, s.Sum)
	}
}

func TestYearlyMeans(t *testing.T) {
	df := cleanedFrame(
		[]string{"A", "B", "C"},
		[]int{2015, 2015, 2016},
		[]float64{100, 50, 200},
	)

	got := YearlyMeans(df)
	want := []YearAggregate{{2015, 75}, {2016, 200}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("means[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLatestYear(t *testing.T) {
	df := cleanedFrame(
		[]string{"A", "B"},
		[]int{2019, 2021},
		[]float64{1, 2},
	)
	if got := LatestYear(df); got != 2021 {
		t.Errorf("LatestYear = %d, want 2021", got)
	}

	empty := cleanedFrame(nil, nil, nil)
	if got := LatestYear(empty); got != 0 {
		t.Errorf("LatestYear(empty) = %d, want 0", got)
	}
}
