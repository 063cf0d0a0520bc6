package processor

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func rawFrame(locs, periods, values []string) dataframe.DataFrame {
	return dataframe.New(
		series.New(locs, series.String, ColLocation),
		series.New(periods, series.String, ColPeriod),
		series.New(values, series.String, ColValue),
	)
}

func defaultOpts() CleanOptions {
	return CleanOptions{MinYear: 2010, MaxYear: 2021}
}

func TestCleanDropsInvalidRows(t *testing.T) {
	df := rawFrame(
		[]string{"Nigeria", "Brazil", "Nigeria", "", "India", "Chad", "Mali"},
		[]string{"2015", "2015", "1999", "2016", "2016", "2016", "2017"},
		[]string{"100", "N/A", "50", "10", "-5", "1,200", "30"},
	)

	cleaned, rep, err := Clean(df, defaultOpts())
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	// 保留 Nigeria/2015/100, Chad/2016/1200, Mali/2017/30
	if cleaned.Nrow() != 3 {
		t.Fatalf("Nrow = %d, want 3", cleaned.Nrow())
	}
	if rep.NonNumeric != 1 || rep.BadPeriod != 1 || rep.EmptyLocation != 1 || rep.Negative != 1 {
		t.Errorf("unexpected report: %+v", rep)
	}
	if rep.Dropped() != 4 {
		t.Errorf("Dropped = %d, want 4", rep.Dropped())
	}

	// 千位分隔符被剥离
	if got := cleaned.Col(ColValue).Float()[1]; got != 1200 {
		t.Errorf("Chad value = %v, want 1200", got)
	}
}

func TestCleanCollapsesDuplicates(t *testing.T) {
	df := rawFrame(
		[]string{"Nigeria", "Nigeria", "Nigeria"},
		[]string{"2015", "2015", "2016"},
		[]string{"100", "100", "100"},
	)

	cleaned, rep, err := Clean(df, defaultOpts())
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if cleaned.Nrow() != 2 {
		t.Errorf("Nrow = %d, want 2", cleaned.Nrow())
	}
	if rep.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", rep.Duplicates)
	}
}

func TestCleanAppliesAliases(t *testing.T) {
	opts := defaultOpts()
	opts.Aliases = map[string]string{"Viet Nam": "Vietnam"}

	df := rawFrame(
		[]string{"Viet Nam", "Vietnam"},
		[]string{"2015", "2016"},
		[]string{"10", "20"},
	)

	cleaned, _, err := Clean(df, opts)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	for _, loc := range cleaned.Col(ColLocation).Records() {
		if loc != "Vietnam" {
			t.Errorf("alias not applied, got %q", loc)
		}
	}
}

func TestCleanCustomColumnNames(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"Nigeria"}, series.String, "SpatialDim"),
		series.New([]string{"2015"}, series.String, "TimeDim"),
		series.New([]string{"42"}, series.String, "Value"),
	)

	opts := defaultOpts()
	opts.LocationCol = "SpatialDim"
	opts.PeriodCol = "TimeDim"
	opts.ValueCol = "Value"

	cleaned, _, err := Clean(df, opts)
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}

	// 清洗结果使用规范列名
	if got := cleaned.Names(); got[0] != ColLocation || got[1] != ColPeriod || got[2] != ColValue {
		t.Errorf("column names = %v", got)
	}
	if cleaned.Col(ColValue).Float()[0] != 42 {
		t.Error("value not carried over")
	}
}

func TestCleanMissingColumn(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"Nigeria"}, series.String, ColLocation),
		series.New([]string{"2015"}, series.String, ColPeriod),
	)
	if _, _, err := Clean(df, defaultOpts()); err == nil {
		t.Fatal("expected error for missing value column")
	}
}

func TestCleanIdempotent(t *testing.T) {
	df := rawFrame(
		[]string{"Nigeria", "Brazil", "Nigeria", "Brazil"},
		[]string{"2015", "2015", "2016", "2015"},
		[]string{"100", "50", "200", "50"},
	)

	once, rep1, err := Clean(df, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	twice, rep2, err := Clean(once, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}

	if rep1.Duplicates != 1 {
		t.Errorf("first pass duplicates = %d, want 1", rep1.Duplicates)
	}
	if rep2.Dropped() != 0 {
		t.Errorf("second pass dropped %d rows, want 0: %+v", rep2.Dropped(), rep2)
	}
	if once.Nrow() != twice.Nrow() {
		t.Fatalf("re-cleaning changed row count: %d -> %d", once.Nrow(), twice.Nrow())
	}
	for i := range once.Records() {
		for j := range once.Records()[i] {
			if once.Records()[i][j] != twice.Records()[i][j] {
				t.Fatalf("re-cleaning changed cell [%d][%d]", i, j)
			}
		}
	}
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	df := rawFrame(
		[]string{"Nigeria", "Bad"},
		[]string{"2015", "1800"},
		[]string{"100", "5"},
	)
	before := df.Records()

	if _, _, err := Clean(df, defaultOpts()); err != nil {
		t.Fatal(err)
	}

	after := df.Records()
	if len(before) != len(after) {
		t.Fatal("input frame mutated")
	}
	for i := range before {
		for j := range before[i] {
			if before[i][j] != after[i][j] {
				t.Fatal("input frame mutated")
			}
		}
	}
}

func TestCleanedInvariants(t *testing.T) {
	df := rawFrame(
		[]string{"Nigeria", "Brazil", "India", "Chad", "Mali"},
		[]string{"2009", "2010", "2021", "2022", "2015.000000"},
		[]string{"1", "2", "3", "4", "5"},
	)

	cleaned, _, err := Clean(df, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}

	years := cleaned.Col(ColPeriod).Float()
	vals := cleaned.Col(ColValue).Float()
	for i := range years {
		if years[i] < 2010 || years[i] > 2021 {
			t.Errorf("year %v outside [2010, 2021]", years[i])
		}
		if vals[i] < 0 {
			t.Errorf("negative value %v survived cleaning", vals[i])
		}
	}
	// 2010 2021 以及带小数形式的2015保留
	if cleaned.Nrow() != 3 {
		t.Errorf("Nrow = %d, want 3", cleaned.Nrow())
	}
}
