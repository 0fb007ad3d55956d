package scenario

import (
	"context"
	"testing"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func newTestT() *T {
	return newT(context.Background(), framework.TestID{Path: []string{"s", "step"}}, "step", NewState(), framework.NullTestLogger())
}

func TestExpectEqualNormalizesNumbers(t *testing.T) {
	st := newTestT()
	assert.True(t, st.ExpectEqual(ldvalue.Float64(2020), 2020, "year"))
	assert.True(t, st.ExpectEqual(int64(7), 7.0, "count"))
	assert.False(t, st.failed)
}

func TestExpectEqualStringIsNotNumber(t *testing.T) {
	st := newTestT()
	assert.False(t, st.ExpectEqual("2020", 2020, "year"))
	assert.True(t, st.failed)
	assert.Equal(t, Assertion{Description: "year", Expected: "2020", Actual: `"2020"`, Passed: false}, st.assertions[0])
}

func TestFailedAssertionsDoNotStopSiblings(t *testing.T) {
	st := newTestT()
	st.run(func(st *T) {
		st.ExpectEqual(1, 2, "first")
		st.ExpectEqual("a", "a", "second")
		st.ExpectTrue(false, "third")
	})
	assert.Len(t, st.assertions, 3)
	assert.Equal(t, framework.StatusFailed, st.status())
	r := st.result(1)
	assert.Len(t, r.FailedAssertions(), 2)
}

func TestExpectNotAbsent(t *testing.T) {
	st := newTestT()
	assert.True(t, st.ExpectNotAbsent("token", "token"))
	assert.False(t, st.ExpectNotAbsent(ldvalue.Null(), "null"))
	assert.False(t, st.ExpectNotAbsent("", "empty"))
	assert.False(t, st.ExpectNotAbsent(ldvalue.OptionalString{}, "undefined"))
	assert.True(t, st.ExpectNotAbsent(0, "zero is a value"))
}

func TestExpectContains(t *testing.T) {
	st := newTestT()
	assert.True(t, st.ExpectContains([]byte(`[{"name":"Book A"}]`), "Book A", "body text"))
	assert.True(t, st.ExpectContains("hello world", "world", "string"))
	assert.True(t, st.ExpectContains(ldvalue.ArrayOf(ldvalue.String("body"), ldvalue.String("email")), "email", "array element"))
	assert.False(t, st.ExpectContains(ldvalue.ArrayOf(ldvalue.String("body")), "email", "missing element"))
	assert.False(t, st.ExpectContains("abc", "xyz", "missing substring"))
}

func TestTestifyAssertionsAreRecorded(t *testing.T) {
	st := newTestT()
	st.run(func(st *T) {
		assert.Equal(st, "a", "b", "letters differ")
	})
	assert.Equal(t, framework.StatusFailed, st.status())
	assert.Len(t, st.assertions, 1)
	assert.Contains(t, st.assertions[0].Description, "letters differ")
}
