package scenario

import (
	"strings"

	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// All values compared by the Expect methods are first converted to JSON values. Numbers
// are compared numerically, so 2020 equals 2020.0, but a string never equals a number:
// "2020" does not equal 2020.

// ExpectEqual records whether actual equals expected.
func (t *T) ExpectEqual(actual, expected interface{}, description string) bool {
	a, e := harness.ToValue(actual), harness.ToValue(expected)
	return t.record(Assertion{
		Description: description,
		Expected:    e.JSONString(),
		Actual:      a.JSONString(),
		Passed:      a.Equal(e),
	})
}

// ExpectNotAbsent records whether a value is present: not null, and not an empty string.
func (t *T) ExpectNotAbsent(value interface{}, description string) bool {
	v := harness.ToValue(value)
	return t.record(Assertion{
		Description: description,
		Expected:    "a value",
		Actual:      v.JSONString(),
		Passed:      !v.IsNull() && !(v.Type() == ldvalue.StringType && v.StringValue() == ""),
	})
}

// ExpectContains records whether haystack contains needle. If haystack is a JSON array,
// one of its elements must equal needle; otherwise haystack is treated as text and must
// contain needle as a substring. A []byte haystack, such as a response body, is text.
func (t *T) ExpectContains(haystack, needle interface{}, description string) bool {
	n := harness.ToValue(needle)
	var passed bool
	var actual string
	if text, ok := asText(haystack); ok {
		passed = strings.Contains(text, valueText(n))
		actual = ldvalue.String(text).JSONString()
	} else {
		h := harness.ToValue(haystack)
		actual = h.JSONString()
		if h.Type() == ldvalue.ArrayType {
			for i := 0; i < h.Count(); i++ {
				if h.GetByIndex(i).Equal(n) {
					passed = true
					break
				}
			}
		} else {
			passed = strings.Contains(valueText(h), valueText(n))
		}
	}
	return t.record(Assertion{
		Description: description,
		Expected:    "something containing " + n.JSONString(),
		Actual:      actual,
		Passed:      passed,
	})
}

// ExpectTrue records a boolean condition.
func (t *T) ExpectTrue(condition bool, description string) bool {
	return t.record(Assertion{Description: description, Expected: "true", Actual: ldvalue.Bool(condition).JSONString(), Passed: condition})
}

func asText(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

func valueText(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}
