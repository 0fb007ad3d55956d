package booktests

import (
	"fmt"
	"strings"

	"github.com/bookstore-qa/bookstore-contract-tests/bookstore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Env is what the scenarios need to know about the service under test.
type Env struct {
	BaseURL   string
	Transport *harness.HTTPTransport

	// UpdateFixturePath is the JSON or YAML file with the field values used by the book
	// update scenario.
	UpdateFixturePath string
}

func (e Env) users(t *scenario.T) *bookstore.UserClient {
	return bookstore.NewUserClient(e.BaseURL, e.Transport.WithLogger(t.DebugLogger()))
}

func (e Env) books(t *scenario.T) *bookstore.BookClient {
	return bookstore.NewBookClient(e.BaseURL, e.Transport.WithLogger(t.DebugLogger()))
}

func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func newIdentity() scenario.Identity {
	return scenario.Identity{
		Email:    "user" + uniqueSuffix() + "@example.com",
		Password: uniqueSuffix()[:8],
	}
}

// newBookFields returns a complete set of book fields whose text values are unique to
// this call.
func newBookFields(prefix string) harness.FieldMap {
	id := uuid.New()
	suffix := strings.ReplaceAll(id.String(), "-", "")[:12]
	return harness.NewFieldMap(
		bookstore.FieldBookName, fmt.Sprintf("%s Title %s", prefix, suffix),
		bookstore.FieldAuthor, fmt.Sprintf("%s Author %s", prefix, suffix),
		bookstore.FieldPublishedYear, 1900+int(id.ID()%125),
		bookstore.FieldBookSummary, fmt.Sprintf("Summary for the book %s", suffix),
	)
}

func expectStatus(t *scenario.T, resp harness.Response, status int) bool {
	return t.ExpectEqual(resp.StatusCode, status, "status code")
}

func expectStatusLine(t *scenario.T, resp harness.Response, line string) bool {
	return t.ExpectEqual(resp.StatusLine, line, "status line")
}

func expectBody(t *scenario.T, resp harness.Response, path string, expected interface{}) bool {
	return t.ExpectEqual(resp.Field(path), expected, "response property "+path)
}

// expectBookFields checks every field that the schema defines against the values in
// the field map.
func expectBookFields(t *scenario.T, resp harness.Response, expected harness.FieldMap) {
	schema := bookstore.BookSchema()
	for _, f := range schema.Fields {
		wire, _ := schema.WireName(f.Name)
		if v, ok := expected.Get(f.Name); ok {
			expectBody(t, resp, wire, v)
		}
	}
}

// expectID checks that a response describes the resource with the given ID.
func expectID(t *scenario.T, resp harness.Response, id string) bool {
	actual, ok := harness.IDString(resp.Field("id"))
	if !ok {
		return t.ExpectNotAbsent(resp.Field("id"), "book id")
	}
	return t.ExpectEqual(actual, id, "book id")
}

// validationLocations returns the field names reported in a 422 response's detail list.
func validationLocations(resp harness.Response) ldvalue.Value {
	detail := resp.Field("detail")
	names := ldvalue.ArrayBuild()
	for i := 0; i < detail.Count(); i++ {
		loc := detail.GetByIndex(i).GetByKey("loc")
		if n := loc.Count(); n > 0 {
			names.Add(loc.GetByIndex(n - 1))
		}
	}
	return names.Build()
}
