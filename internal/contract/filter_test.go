package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMPAN = "008450062012345678910"

func TestBuildFilters(t *testing.T) {
	jan1 := Date(2015, time.January, 1)
	jan31 := Date(2015, time.January, 31)

	tests := []struct {
		name     string
		criteria QueryCriteria
		want     Filters
	}{
		{
			name:     "both dates use overlap test",
			criteria: QueryCriteria{AssetID: testMPAN, Start: jan1, End: jan31},
			want: Filters{
				KeyMPAN:     testMPAN,
				KeyStartLTE: "2015-01-31",
				KeyEndGTE:   "2015-01-01",
			},
		},
		{
			name:     "start only",
			criteria: QueryCriteria{AssetID: testMPAN, Start: jan1},
			want: Filters{
				KeyMPAN:     testMPAN,
				KeyStartGTE: "2015-01-01",
			},
		},
		{
			name:     "end only",
			criteria: QueryCriteria{AssetID: testMPAN, End: jan31},
			want: Filters{
				KeyMPAN:   testMPAN,
				KeyEndLTE: "2015-01-31",
			},
		},
		{
			name:     "mpan only",
			criteria: QueryCriteria{AssetID: testMPAN},
			want:     Filters{KeyMPAN: testMPAN},
		},
		{
			name:     "contracted",
			criteria: QueryCriteria{AssetID: testMPAN, Contracted: true},
			want: Filters{
				KeyMPAN:       testMPAN,
				KeyContracted: "true",
			},
		},
		{
			name:     "contracted and remove cancelled",
			criteria: QueryCriteria{AssetID: testMPAN, Contracted: true, RemoveCancelled: true},
			want: Filters{
				KeyMPAN:            testMPAN,
				KeyContracted:      "true",
				KeyRemoveCancelled: "true",
			},
		},
		{
			name:     "start only without mpan",
			criteria: QueryCriteria{Start: jan1},
			want:     Filters{KeyStartGTE: "2015-01-01"},
		},
		{
			name:     "empty",
			criteria: QueryCriteria{},
			want:     Filters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilters(tt.criteria))
		})
	}
}

func TestBuildFilters_FalseFlagsOmitted(t *testing.T) {
	f := BuildFilters(QueryCriteria{AssetID: testMPAN, Contracted: false, RemoveCancelled: false})

	_, hasContracted := f[KeyContracted]
	_, hasCancelled := f[KeyRemoveCancelled]
	assert.False(t, hasContracted, "contracted_ppa must not be sent as false")
	assert.False(t, hasCancelled, "remove_cancelled_contracts must not be sent as false")
}

func TestBuildFilters_DateRangeProperty(t *testing.T) {
	start := Date(2017, time.March, 15)
	for offset := 0; offset < 400; offset += 37 {
		end := AddDays(start, offset)
		f := BuildFilters(QueryCriteria{Start: start, End: end})

		assert.Equal(t, FormatDate(end), f[KeyStartLTE])
		assert.Equal(t, FormatDate(start), f[KeyEndGTE])
		assert.NotContains(t, f, KeyStartGTE)
		assert.NotContains(t, f, KeyEndLTE)
	}
}

func TestBuildFilters_Idempotent(t *testing.T) {
	q := QueryCriteria{
		AssetID:         testMPAN,
		Start:           Date(2017, time.November, 1),
		End:             Date(2017, time.November, 30),
		Contracted:      true,
		RemoveCancelled: true,
	}

	first := BuildFilters(q)
	second := BuildFilters(q)
	assert.Equal(t, first, second)

	// each call hands out its own map
	first["extra"] = "x"
	assert.NotContains(t, BuildFilters(q), "extra")
}

func TestBoolString(t *testing.T) {
	assert.Equal(t, "true", BoolString(true))
	assert.Equal(t, "false", BoolString(false))
}

func TestFilters_Encode(t *testing.T) {
	f := Filters{KeyMPAN: "123", KeyContracted: "true"}
	assert.Equal(t, "contracted_ppa=true&mpan=123", f.Encode())
	assert.Equal(t, "123", f.Values().Get(KeyMPAN))
}

func TestQueryCriteria_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       QueryCriteria
		wantErr bool
	}{
		{"no dates", QueryCriteria{}, false},
		{"start only", QueryCriteria{Start: Date(2017, 1, 1)}, false},
		{"same day", QueryCriteria{Start: Date(2017, 1, 1), End: Date(2017, 1, 1)}, false},
		{"ordered", QueryCriteria{Start: Date(2017, 1, 1), End: Date(2017, 2, 1)}, false},
		{"inverted", QueryCriteria{Start: Date(2017, 2, 1), End: Date(2017, 1, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvertedRange))
				return
			}
			assert.NoError(t, err)
		})
	}
}
