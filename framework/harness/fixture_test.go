package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestLoadJSONFixturePreservesOrder(t *testing.T) {
	m, err := LoadFieldMapFile("testdata/update.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "author", "published_year", "book_summary"}, m.Keys())
	assert.Equal(t, ldvalue.Int(2021), m.Value("published_year"))
	assert.Equal(t, "Updated Title", m.Value("name").StringValue())
}

func TestLoadYAMLFixtureMatchesJSON(t *testing.T) {
	j, err := LoadFieldMapFile("testdata/update.json")
	require.NoError(t, err)
	y, err := LoadFieldMapFile("testdata/update.yaml")
	require.NoError(t, err)
	assert.Equal(t, j.Keys(), y.Keys())
	for _, k := range j.Keys() {
		assert.True(t, j.Value(k).Equal(y.Value(k)), "field %s", k)
	}
}

func TestLoadMissingFixture(t *testing.T) {
	_, err := LoadFieldMapFile("testdata/does-not-exist.json")
	var fe *FixtureError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "testdata/does-not-exist.json", fe.Path)
	assert.True(t, IsConfigurationError(err))
}

func TestLoadFixtureThatIsNotAnObject(t *testing.T) {
	_, err := LoadFieldMapFile("testdata/array.json")
	assert.True(t, IsConfigurationError(err))
}

func TestParseJSONFieldMapNestedValues(t *testing.T) {
	m, err := ParseJSONFieldMap([]byte(`{"a":{"x":[1,2]},"b":null}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	assert.Equal(t, 2, LookupPath(m.Value("a"), "x[1]").IntValue())
	assert.True(t, m.Value("b").IsNull())
}
