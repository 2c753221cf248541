// AngelaMos | 2026
// types_test.go

package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name  Optional[string]   `json:"name"`
	Notes Optional[string]   `json:"notes"`
	Tags  Optional[[]string] `json:"tags"`
}

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"spring","notes":null}`), &p))

	assert.True(t, p.Name.HasValue())
	assert.Equal(t, "spring", p.Name.Value)

	assert.True(t, p.Notes.Set)
	assert.True(t, p.Notes.Null)
	assert.Nil(t, p.Notes.Ptr())

	assert.False(t, p.Tags.Set)
}

func TestOptionalApply(t *testing.T) {
	name := "before"
	assert.True(t, Optional[string]{}.Apply(&name))
	assert.Equal(t, "before", name)

	assert.True(t, Some("after").Apply(&name))
	assert.Equal(t, "after", name)

	assert.False(t, Null[string]().Apply(&name))
	assert.Equal(t, "after", name)

	notes := &name
	Optional[string]{}.ApplyNullable(&notes)
	assert.NotNil(t, notes)

	Null[string]().ApplyNullable(&notes)
	assert.Nil(t, notes)

	Some("fresh").ApplyNullable(&notes)
	require.NotNil(t, notes)
	assert.Equal(t, "fresh", *notes)
}

func TestOptionalEmptyListIsAValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"tags":[]}`), &p))

	assert.True(t, p.Tags.HasValue())
	assert.Empty(t, p.Tags.Value)
}

func TestDateJSONAndScan(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-01"`), &d))
	assert.Equal(t, NewDate(2026, time.March, 1), d)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-03-01"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"01/03/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20260301`), &d))

	var scanned Date
	require.NoError(t, scanned.Scan(time.Date(2026, time.March, 1, 15, 4, 5, 0, time.Local)))
	assert.Equal(t, "2026-03-01", scanned.String())

	assert.True(t, NewDate(2026, time.January, 1).Before(NewDate(2026, time.January, 2)))
	assert.False(t, NewDate(2026, time.January, 2).Before(NewDate(2026, time.January, 2)))
}

func TestTimeOfDay(t *testing.T) {
	short, err := ParseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", short.String())

	long, err := ParseTimeOfDay("17:45:10")
	require.NoError(t, err)
	assert.True(t, short.Before(long))
	assert.False(t, long.Before(short))
	assert.False(t, short.Before(short))

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)

	var tod TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"08:00"`), &tod))
	assert.Equal(t, NewTimeOfDay(8, 0, 0), tod)

	require.NoError(t, tod.Scan([]byte("23:59:59")))
	assert.Equal(t, "23:59:59", tod.String())

	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "23:59:59", v)
}
