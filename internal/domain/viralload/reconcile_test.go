package viralload

import (
	"reflect"
	"testing"
	"time"
)

func TestLatest_MostRecentWins(t *testing.T) {
	obs := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(300), EventDate: dayPtr(2022, time.January, 1)},
		{OVCID: "100", ViralLoad: vlPtr(30), EventDate: dayPtr(2023, time.June, 1)},
		{OVCID: "200", ViralLoad: vlPtr(80), EventDate: dayPtr(2023, time.February, 10)},
	}

	latest := Latest(obs)
	if len(latest) != 2 {
		t.Fatalf("Latest returned %d observations, want 2", len(latest))
	}
	if *latest[0].ViralLoad != 30 {
		t.Errorf("subject 100 latest load = %v, want 30", *latest[0].ViralLoad)
	}
}

func TestLatest_DatedBeatsUndated(t *testing.T) {
	obs := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(500)},
		{OVCID: "100", ViralLoad: vlPtr(40), EventDate: dayPtr(2021, time.May, 1)},
	}

	latest := Latest(obs)
	if len(latest) != 1 {
		t.Fatalf("Latest returned %d observations, want 1", len(latest))
	}
	if latest[0].EventDate == nil || *latest[0].ViralLoad != 40 {
		t.Errorf("undated observation won over dated one: %+v", latest[0])
	}
}

func TestBandCounts_UsesLatestPerSubject(t *testing.T) {
	obs := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(300), EventDate: dayPtr(2022, time.January, 1)},
		{OVCID: "100", ViralLoad: vlPtr(30), EventDate: dayPtr(2023, time.June, 1)},
	}

	counts := BandCounts(obs)
	want := map[string]int{BandLDL: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("BandCounts = %v, want %v", counts, want)
	}
}

func TestTrend_HistoryOutlivesRecovery(t *testing.T) {
	// A subject unsuppressed in 2022 who recovered in 2023 stays in the
	// 2022 trend point while the current band reports suppression.
	obs := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(300), EventDate: dayPtr(2022, time.January, 1)},
		{OVCID: "100", ViralLoad: vlPtr(30), EventDate: dayPtr(2023, time.June, 1)},
	}

	trend := Trend(obs, 2021)
	want := []YearCount{{Year: 2022, Count: 1}}
	if !reflect.DeepEqual(trend, want) {
		t.Errorf("Trend = %v, want %v", trend, want)
	}
}

func TestTrend_SubjectCountsOncePerYear(t *testing.T) {
	obs := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(400), EventDate: dayPtr(2022, time.February, 1)},
		{OVCID: "100", ViralLoad: vlPtr(600), EventDate: dayPtr(2022, time.September, 1)},
		{OVCID: "100", ViralLoad: vlPtr(250), EventDate: dayPtr(2023, time.March, 1)},
		{OVCID: "200", ViralLoad: vlPtr(1200), EventDate: dayPtr(2023, time.March, 1)},
	}

	trend := Trend(obs, 2021)
	want := []YearCount{{Year: 2022, Count: 1}, {Year: 2023, Count: 2}}
	if !reflect.DeepEqual(trend, want) {
		t.Errorf("Trend = %v, want %v", trend, want)
	}
}

func TestTrend_CollapsesSameDrawAcrossSources(t *testing.T) {
	// The embedded and lab sources both carry the same draw; it must not
	// count twice.
	embedded := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(500), EventDate: dayPtr(2022, time.April, 5)},
	}
	external := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(500), EventDate: dayPtr(2022, time.April, 5)},
	}

	trend := Trend(Merge(embedded, external), 2021)
	want := []YearCount{{Year: 2022, Count: 1}}
	if !reflect.DeepEqual(trend, want) {
		t.Errorf("Trend = %v, want %v", trend, want)
	}
}

func TestTrend_ExcludesSuppressedUndatedAndOld(t *testing.T) {
	obs := []Observation{
		{OVCID: "100", ViralLoad: vlPtr(150), EventDate: dayPtr(2022, time.May, 1)},   // suppressed
		{OVCID: "200", ViralLoad: vlPtr(300)},                                         // no date
		{OVCID: "300", ViralLoad: vlPtr(300), EventDate: dayPtr(2019, time.May, 1)},   // before floor
		{OVCID: "400", EventDate: dayPtr(2022, time.May, 1)},                          // no load
		{OVCID: "500", ViralLoad: vlPtr(2000), EventDate: dayPtr(2022, time.May, 1)},  // counts
	}

	trend := Trend(obs, 2021)
	want := []YearCount{{Year: 2022, Count: 1}}
	if !reflect.DeepEqual(trend, want) {
		t.Errorf("Trend = %v, want %v", trend, want)
	}
}

func TestTrend_Ascending(t *testing.T) {
	obs := []Observation{
		{OVCID: "1", ViralLoad: vlPtr(300), EventDate: dayPtr(2024, time.January, 1)},
		{OVCID: "2", ViralLoad: vlPtr(300), EventDate: dayPtr(2021, time.January, 1)},
		{OVCID: "3", ViralLoad: vlPtr(300), EventDate: dayPtr(2023, time.January, 1)},
	}

	trend := Trend(obs, 2021)
	for i := 1; i < len(trend); i++ {
		if trend[i-1].Year >= trend[i].Year {
			t.Fatalf("trend not strictly ascending: %v", trend)
		}
	}
}

func TestTrend_Empty(t *testing.T) {
	if got := Trend(nil, 2021); len(got) != 0 {
		t.Errorf("Trend(nil) = %v, want empty", got)
	}
}
