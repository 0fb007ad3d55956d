package booktests

import (
	"fmt"

	"github.com/bookstore-qa/bookstore-contract-tests/bookstore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// keyUpdateFixture is the session state key holding the fixture's book fields.
const keyUpdateFixture = "updateFixture"

const (
	stepAddBookForUpdate = "add a book to update"
	stepUpdateFromFile   = "update the book with fixture data"
	stepDeleteUpdated    = "delete the updated book"
)

// loadUpdateFixture reads the fixture file and converts it to logical field names. The
// file must provide every book field.
func loadUpdateFixture(path string) (harness.FieldMap, error) {
	raw, err := harness.LoadFieldMapFile(path)
	if err != nil {
		return harness.FieldMap{}, err
	}
	fields, err := bookstore.BookSchema().FromWire(raw)
	if err != nil {
		return harness.FieldMap{}, &harness.FixtureError{Path: path, Err: err}
	}
	for _, f := range bookstore.BookSchema().Fields {
		if v, ok := fields.Get(f.Name); !ok || v.IsNull() {
			wire, _ := bookstore.BookSchema().WireName(f.Name)
			return harness.FieldMap{}, &harness.FixtureError{Path: path, Err: fmt.Errorf("no value for %q", wire)}
		}
	}
	return fields, nil
}

func bookUpdateScenario(env Env) scenario.Scenario {
	return scenario.Scenario{
		Name: "book update",
		Setup: func(st *scenario.State) error {
			fixture, err := loadUpdateFixture(env.UpdateFixturePath)
			if err != nil {
				return err
			}
			st.SetFields(keyUpdateFixture, fixture)
			return seedIdentity(st)
		},
		Steps: []scenario.Step{
			{Name: stepSignup, Ordinal: 1, Action: signupStep(env)},
			{
				Name:                  stepLogin,
				Ordinal:               2,
				DependsOnPriorSuccess: true,
				Action:                loginStep(env),
			},
			{
				Name:                  stepAddBookForUpdate,
				Ordinal:               3,
				DependsOnPriorSuccess: true,
				Action:                addBookStep(env, "Original"),
			},
			{
				Name:                  stepUpdateFromFile,
				Ordinal:               4,
				DependsOnPriorSuccess: true,
				Action: func(t *scenario.T) {
					fixture := t.Fields(keyUpdateFixture)
					id := t.CreatedResourceID()
					fields := t.ExpectedFields().With(fixture)
					resp := t.RequireResponse(env.books(t).Update(t.Context(), t.State(), id, fields))
					expectStatus(t, resp, 200)
					expectStatusLine(t, resp, "HTTP/1.1 200 OK")
					expectBookFields(t, resp, fixture)
					expectID(t, resp, id)
					if resp.IsSuccess() {
						rememberBook(t, id, fields)
					}
				},
			},
			{
				Name:                  "get the updated book",
				Ordinal:               5,
				DependsOnPriorSuccess: true,
				Action:                getBookStep(env),
			},
			{
				Name:                  "update some fields and resend the rest",
				Ordinal:               6,
				DependsOnPriorSuccess: true,
				DependsOn:             stepUpdateFromFile,
				Action: func(t *scenario.T) {
					fixture := t.Fields(keyUpdateFixture)
					id := t.CreatedResourceID()
					fields := t.ExpectedFields().With(harness.NewFieldMap(
						bookstore.FieldBookName, fixture.Value(bookstore.FieldBookName).StringValue()+" - Partial Update",
						bookstore.FieldAuthor, fixture.Value(bookstore.FieldAuthor).StringValue()+" - Updated",
					))
					resp := t.RequireResponse(env.books(t).Update(t.Context(), t.State(), id, fields))
					expectStatus(t, resp, 200)
					expectBookFields(t, resp, fields)
					if resp.IsSuccess() {
						rememberBook(t, id, fields)
					}
				},
			},
			{
				Name:                  "update with an invalid published year",
				Ordinal:               7,
				DependsOnPriorSuccess: true,
				DependsOn:             stepAddBookForUpdate,
				Action: func(t *scenario.T) {
					id := t.CreatedResourceID()
					fields := t.ExpectedFields().With(harness.NewFieldMap(bookstore.FieldPublishedYear, "invalid_year"))
					resp := t.RequireResponse(env.books(t).Update(t.Context(), t.State(), id, fields))
					t.ExpectContains(ldvalue.ArrayOf(ldvalue.Int(400), ldvalue.Int(422), ldvalue.Int(200)), resp.StatusCode,
						"invalid year is rejected or accepted without error")
				},
			},
			{
				Name:                  "list all books after updating",
				Ordinal:               8,
				DependsOnPriorSuccess: true,
				DependsOn:             stepAddBookForUpdate,
				Action:                listContainsStep(env, true),
			},
			{
				Name:                  stepDeleteUpdated,
				Ordinal:               9,
				DependsOnPriorSuccess: true,
				DependsOn:             stepAddBookForUpdate,
				Action:                deleteBookStep(env),
			},
			{
				Name:                  "get the deleted book",
				Ordinal:               10,
				DependsOnPriorSuccess: true,
				DependsOn:             stepDeleteUpdated,
				Action:                getDeletedBookStep(env),
			},
			{
				Name:                  "update a new book several times",
				Ordinal:               11,
				DependsOnPriorSuccess: true,
				DependsOn:             stepLogin,
				Action: func(t *scenario.T) {
					fixture := t.Fields(keyUpdateFixture)
					client := env.books(t)
					fields := newBookFields("Multi Update")
					resp := t.RequireResponse(client.Create(t.Context(), t.State(), fields))
					if !expectStatus(t, resp, 200) {
						t.FailNow()
					}
					id := t.CreatedResourceID()
					defer func() {
						resp, err := client.DeleteByID(t.Context(), t.State(), id)
						if err != nil || !resp.IsSuccess() {
							t.Debug("cleanup of book %s failed: %v %s", id, err, resp.StatusLine)
						}
					}()

					fields = fields.With(harness.NewFieldMap(
						bookstore.FieldBookName, fixture.Value(bookstore.FieldBookName),
						bookstore.FieldAuthor, fixture.Value(bookstore.FieldAuthor),
					))
					resp = t.RequireResponse(client.Update(t.Context(), t.State(), id, fields))
					expectStatus(t, resp, 200)

					fields = fields.With(harness.NewFieldMap(
						bookstore.FieldBookSummary, fixture.Value(bookstore.FieldBookSummary).StringValue()+" - Second Update",
					))
					resp = t.RequireResponse(client.Update(t.Context(), t.State(), id, fields))
					expectStatus(t, resp, 200)
					expectBody(t, resp, "book_summary", fields.Value(bookstore.FieldBookSummary))
				},
			},
		},
	}
}
