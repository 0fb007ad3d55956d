package harness

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is the result of a request that reached the service. Any status code,
// including errors, is a normal Response.
type Response struct {
	StatusCode int
	StatusLine string
	Header     http.Header
	Body       []byte
}

// ResponseSummary is the part of a Response that is kept in test results and session
// state.
type ResponseSummary struct {
	StatusCode int
	StatusLine string
	Body       string
}

func (r Response) Summary() ResponseSummary {
	return ResponseSummary{StatusCode: r.StatusCode, StatusLine: r.StatusLine, Body: string(r.Body)}
}

func (s ResponseSummary) String() string {
	return fmt.Sprintf("%s %s", s.StatusLine, s.Body)
}

// IsSuccess returns true for 2xx statuses.
func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON parses the body as JSON. It returns null if the body is empty or is not valid JSON.
func (r Response) JSON() ldvalue.Value {
	if len(r.Body) == 0 {
		return ldvalue.Null()
	}
	var v ldvalue.Value
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return ldvalue.Null()
	}
	return v
}

// Field returns a value from the JSON body by path, such as "detail" or "detail[0].msg".
// It returns null if the path does not exist.
func (r Response) Field(path string) ldvalue.Value {
	return LookupPath(r.JSON(), path)
}

// LookupPath navigates a JSON value using dot-separated property names and [n] array
// indexes. A leading "$." is allowed and ignored.
func LookupPath(root ldvalue.Value, path string) ldvalue.Value {
	path = strings.TrimPrefix(strings.TrimPrefix(path, "$"), ".")
	current := root
	for _, segment := range splitPath(path) {
		if segment.isIndex {
			if current.Type() != ldvalue.ArrayType || segment.index >= current.Count() {
				return ldvalue.Null()
			}
			current = current.GetByIndex(segment.index)
			continue
		}
		if current.Type() != ldvalue.ObjectType {
			return ldvalue.Null()
		}
		current = current.GetByKey(segment.key)
	}
	return current
}

type pathSegment struct {
	key     string
	index   int
	isIndex bool
}

func splitPath(path string) []pathSegment {
	var ret []pathSegment
	if path == "" {
		return ret
	}
	for _, part := range strings.Split(path, ".") {
		for part != "" {
			open := strings.Index(part, "[")
			if open < 0 {
				ret = append(ret, pathSegment{key: part})
				break
			}
			if open > 0 {
				ret = append(ret, pathSegment{key: part[:open]})
			}
			end := strings.Index(part[open:], "]")
			if end < 0 {
				ret = append(ret, pathSegment{key: part[open:]})
				break
			}
			n, err := strconv.Atoi(part[open+1 : open+end])
			if err != nil || n < 0 {
				ret = append(ret, pathSegment{key: part[open : open+end+1]})
			} else {
				ret = append(ret, pathSegment{index: n, isIndex: true})
			}
			part = part[open+end+1:]
		}
	}
	return ret
}

// IDString normalizes a server-assigned identifier to a string. Numeric IDs are written
// without a fractional part; an absent or null ID yields false.
func IDString(v ldvalue.Value) (string, bool) {
	switch v.Type() {
	case ldvalue.StringType:
		if v.StringValue() == "" {
			return "", false
		}
		return v.StringValue(), true
	case ldvalue.NumberType:
		if v.IsInt() {
			return strconv.Itoa(v.IntValue()), true
		}
		return strconv.FormatFloat(v.Float64Value(), 'f', -1, 64), true
	default:
		return "", false
	}
}
