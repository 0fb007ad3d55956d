package fakestore

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bookstore-qa/bookstore-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// requestBody is a decoded JSON request body plus any validation issues found so far.
type requestBody struct {
	fields ldvalue.Value
	issues []servicedef.ValidationIssue
}

func readBody(r io.Reader) *requestBody {
	rb := &requestBody{}
	data, err := io.ReadAll(r)
	if err == nil && len(data) == 0 {
		rb.fields = ldvalue.Null()
		rb.issues = append(rb.issues, servicedef.ValidationIssue{
			Type: servicedef.IssueMissing,
			Loc:  []string{"body"},
			Msg:  servicedef.MsgFieldRequired,
		})
		return rb
	}
	if err == nil {
		err = json.Unmarshal(data, &rb.fields)
	}
	if err != nil || rb.fields.Type() != ldvalue.ObjectType {
		rb.fields = ldvalue.Null()
		rb.issues = append(rb.issues, servicedef.ValidationIssue{
			Type:  servicedef.IssueJSON,
			Loc:   []string{"body"},
			Msg:   "JSON decode error",
			Input: ldvalue.String(string(data)),
		})
	}
	return rb
}

func (rb *requestBody) addIssue(issueType, field, msg string, input ldvalue.Value) {
	rb.issues = append(rb.issues, servicedef.ValidationIssue{
		Type:  issueType,
		Loc:   []string{"body", field},
		Msg:   msg,
		Input: input,
	})
}

func (rb *requestBody) present(field string) (ldvalue.Value, bool) {
	if rb.fields.IsNull() {
		return ldvalue.Null(), false
	}
	v := rb.fields.GetByKey(field)
	if v.IsNull() {
		rb.addIssue(servicedef.IssueMissing, field, servicedef.MsgFieldRequired, rb.fields)
		return v, false
	}
	return v, true
}

func (rb *requestBody) requireString(field string) string {
	v, ok := rb.present(field)
	if !ok {
		return ""
	}
	if v.Type() != ldvalue.StringType {
		rb.addIssue(servicedef.IssueStringType, field, "Input should be a valid string", v)
		return ""
	}
	return v.StringValue()
}

// requireInt accepts a whole number, or a string containing one, the way a lenient
// validator would.
func (rb *requestBody) requireInt(field string) int {
	v, ok := rb.present(field)
	if !ok {
		return 0
	}
	switch v.Type() {
	case ldvalue.NumberType:
		f := v.Float64Value()
		if f == math.Trunc(f) && math.Abs(f) <= math.MaxInt32 {
			return int(f)
		}
		rb.addIssue("int_from_float", field, "Input should be a valid integer, got a number with a fractional part", v)
	case ldvalue.StringType:
		if n, err := strconv.Atoi(strings.TrimSpace(v.StringValue())); err == nil {
			return n
		}
		rb.addIssue(servicedef.IssueIntParsing, field, "Input should be a valid integer, unable to parse string as an integer", v)
	default:
		rb.addIssue("int_type", field, "Input should be a valid integer", v)
	}
	return 0
}

func (rb *requestBody) ok() bool {
	return len(rb.issues) == 0
}
