package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLive(t *testing.T) {
	tests := []struct {
		name    string
		ids     []int64
		wantID  int64
		wantIdx int
		wantOK  bool
	}{
		{"two quotes", []int64{100, 101}, 101, 1, true},
		{"highest in middle", []int64{100, 1001, 101}, 1001, 1, true},
		{"highest first", []int64{7, 3, 5}, 7, 0, true},
		{"tie keeps first", []int64{5, 9, 9}, 9, 1, true},
		{"absent ids skipped", []int64{0, 4, 0}, 4, 1, true},
		{"no positive id", []int64{0, 0}, 0, -1, false},
		{"negative ids ignored", []int64{-5, 0}, 0, -1, false},
		{"empty", nil, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]Record, 0, len(tt.ids))
			for _, id := range tt.ids {
				records = append(records, record(id, "2017-01-01", "2017-12-31"))
			}
			s := mustSet(t, records...)

			idx, ok := SelectLive(s)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantIdx, idx)

			if ok {
				assert.Equal(t, tt.wantID, s.At(idx).ID())
			}
		})
	}
}

func TestContinuityFromLive_GapStopsWindow(t *testing.T) {
	s := mustSet(t,
		record(100, "2017-01-01", "2017-03-31"),
		record(101, "2017-05-01", "2017-08-31"),
		record(102, "2017-09-01", "2017-12-31"),
	)

	live, ok := SelectLive(s)
	require.True(t, ok)
	require.Equal(t, 2, live)

	w, ok := ContinuityFromLive(s, live)
	require.True(t, ok)
	assert.Equal(t, Date(2017, time.May, 1), w.StartLive)
	assert.Equal(t, Date(2017, time.December, 31), w.EndLive)
}

func TestContinuityFromLive(t *testing.T) {
	tests := []struct {
		name      string
		records   []Record
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "live alone",
			records:   []Record{record(1, "2017-01-01", "2017-06-30")},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.June, 30),
		},
		{
			name: "extends forward",
			records: []Record{
				record(2, "2017-01-01", "2017-03-31"),
				record(1, "2017-04-01", "2017-06-30"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.June, 30),
		},
		{
			name: "extends both ways",
			records: []Record{
				record(1, "2016-10-01", "2016-12-31"),
				record(3, "2017-01-01", "2017-03-31"),
				record(2, "2017-04-01", "2017-06-30"),
			},
			wantStart: Date(2016, time.October, 1),
			wantEnd:   Date(2017, time.June, 30),
		},
		{
			name: "overlap does not merge",
			records: []Record{
				record(2, "2017-01-01", "2017-03-31"),
				record(1, "2017-03-15", "2017-06-30"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.March, 31),
		},
		{
			name: "two hops before neighbour is missed",
			records: []Record{
				record(3, "2017-09-01", "2017-12-31"),
				record(1, "2017-01-01", "2017-04-30"),
				record(2, "2017-05-01", "2017-08-31"),
			},
			wantStart: Date(2017, time.May, 1),
			wantEnd:   Date(2017, time.December, 31),
		},
		{
			name: "two hops after neighbour is reached",
			records: []Record{
				record(3, "2017-09-01", "2017-12-31"),
				record(2, "2017-05-01", "2017-08-31"),
				record(1, "2017-01-01", "2017-04-30"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.December, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSet(t, tt.records...)

			live, ok := SelectLive(s)
			require.True(t, ok)
			w, ok := ContinuityFromLive(s, live)
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, w.StartLive)
			assert.Equal(t, tt.wantEnd, w.EndLive)
		})
	}
}

func TestContinuityFromLive_NoLive(t *testing.T) {
	s := mustSet(t, record(1, "2017-01-01", "2017-06-30"))

	_, ok := ContinuityFromLive(s, -1)
	assert.False(t, ok)
	_, ok = ContinuityFromLive(s, 1)
	assert.False(t, ok)

	_, ok = ContinuityFromLive(Set{}, 0)
	assert.False(t, ok)
}

func TestAggregateSpan(t *testing.T) {
	tests := []struct {
		name      string
		records   []Record
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "single",
			records:   []Record{record(1, "2017-01-01", "2017-06-30")},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.June, 30),
		},
		{
			name: "consecutive chain",
			records: []Record{
				record(1, "2017-01-01", "2017-03-31"),
				record(2, "2017-04-01", "2017-06-30"),
				record(3, "2017-07-01", "2017-09-30"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.September, 30),
		},
		{
			name: "gap stops at earliest end",
			records: []Record{
				record(1, "2017-01-01", "2017-03-31"),
				record(2, "2017-05-01", "2017-08-31"),
				record(3, "2017-09-01", "2017-12-31"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.March, 31),
		},
		{
			name: "end starts from minimum end date",
			records: []Record{
				record(1, "2017-01-01", "2017-12-31"),
				record(2, "2017-02-01", "2017-02-28"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.February, 28),
		},
		{
			name: "first position never extends",
			records: []Record{
				record(3, "2017-07-01", "2017-09-30"),
				record(1, "2017-01-01", "2017-03-31"),
				record(2, "2017-04-01", "2017-06-30"),
			},
			wantStart: Date(2017, time.January, 1),
			wantEnd:   Date(2017, time.June, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := AggregateSpan(mustSet(t, tt.records...))
			require.True(t, ok)
			assert.Equal(t, tt.wantStart, w.StartLive)
			assert.Equal(t, tt.wantEnd, w.EndLive)
		})
	}
}

func TestAggregateSpan_Empty(t *testing.T) {
	_, ok := AggregateSpan(Set{})
	assert.False(t, ok)
}

func TestWindow_Days(t *testing.T) {
	w := Window{StartLive: Date(2017, time.January, 1), EndLive: Date(2017, time.January, 31)}
	assert.Equal(t, 31, w.Days())
}

func TestClamp(t *testing.T) {
	year := record(1, "2017-01-01", "2017-12-31")
	january := record(2, "2017-01-01", "2017-01-31")
	june1, june30 := Date(2017, time.June, 1), Date(2017, time.June, 30)

	tests := []struct {
		name      string
		rec       Record
		from, to  time.Time
		wantOK    bool
		wantStart time.Time
		wantEnd   time.Time
	}{
		{"contract covers query", year, june1, june30, true, june1, june30},
		{"contract before query", january, june1, june30, false, time.Time{}, time.Time{}},
		{
			"contract inside query", january,
			Date(2016, time.December, 1), Date(2017, time.March, 1),
			true, Date(2017, time.January, 1), Date(2017, time.January, 31),
		},
		{
			"partial overlap at start", january,
			Date(2017, time.January, 15), Date(2017, time.February, 15),
			true, Date(2017, time.January, 15), Date(2017, time.January, 31),
		},
		{
			"touching last day", january,
			Date(2017, time.January, 31), Date(2017, time.February, 28),
			true, Date(2017, time.January, 31), Date(2017, time.January, 31),
		},
		{
			"contract after query", year,
			Date(2016, time.June, 1), Date(2016, time.December, 31),
			false, time.Time{}, time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContract(tt.rec)
			require.NoError(t, err)

			start, end, ok := Clamp(c, tt.from, tt.to)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
