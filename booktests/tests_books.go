package booktests

import (
	"github.com/bookstore-qa/bookstore-contract-tests/bookstore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"
	"github.com/bookstore-qa/bookstore-contract-tests/servicedef"
)

const (
	stepLogin   = "log in"
	stepAddBook = "add a new book"
	stepDelete  = "delete the book"
)

// rememberBook records what the service should now hold for a book saved by this
// scenario.
func rememberBook(t *scenario.T, id string, fields harness.FieldMap) {
	t.State().SetExpectedFields(fields)
	t.State().TrackResource(id, fields.Value(bookstore.FieldBookName).StringValue())
}

func booksCRUDScenario(env Env) scenario.Scenario {
	return scenario.Scenario{
		Name:  "books CRUD",
		Setup: seedIdentity,
		Steps: []scenario.Step{
			{Name: stepSignup, Ordinal: 1, Action: signupStep(env)},
			{
				Name:                  "sign up again with the same credentials",
				Ordinal:               2,
				DependsOnPriorSuccess: true,
				DependsOn:             stepSignup,
				Action:                duplicateSignupStep(env),
			},
			{
				Name:    "sign up without an email",
				Ordinal: 3,
				Action: func(t *scenario.T) {
					fields := harness.NewFieldMap(bookstore.FieldPassword, t.Identity().Password)
					resp := t.RequireResponse(env.users(t).Signup(t.Context(), fields))
					expectStatus(t, resp, 422)
					expectBody(t, resp, "detail[0].type", servicedef.IssueMissing)
					t.ExpectContains(validationLocations(resp), bookstore.FieldEmail, "missing fields reported")
				},
			},
			{
				Name:                  stepLogin,
				Ordinal:               4,
				DependsOnPriorSuccess: true,
				DependsOn:             stepSignup,
				Action:                loginStep(env),
			},
			{
				Name:                  stepAddBook,
				Ordinal:               5,
				DependsOnPriorSuccess: true,
				DependsOn:             stepLogin,
				Action:                addBookStep(env, "Book"),
			},
			{
				Name:                  "edit the book name",
				Ordinal:               6,
				DependsOnPriorSuccess: true,
				DependsOn:             stepAddBook,
				Action: func(t *scenario.T) {
					id := t.CreatedResourceID()
					fields := t.ExpectedFields().With(harness.NewFieldMap(
						bookstore.FieldBookName, "Book name is edited now "+uniqueSuffix()))
					resp := t.RequireResponse(env.books(t).Update(t.Context(), t.State(), id, fields))
					expectStatus(t, resp, 200)
					expectStatusLine(t, resp, "HTTP/1.1 200 OK")
					expectBookFields(t, resp, fields)
					expectID(t, resp, id)
					if resp.IsSuccess() {
						rememberBook(t, id, fields)
					}
				},
			},
			{
				Name:                  "get the book by id",
				Ordinal:               7,
				DependsOnPriorSuccess: true,
				Action:                getBookStep(env),
			},
			{
				Name:                  "list all books",
				Ordinal:               8,
				DependsOnPriorSuccess: true,
				DependsOn:             stepAddBook,
				Action:                listContainsStep(env, false),
			},
			{
				Name:                  stepDelete,
				Ordinal:               9,
				DependsOnPriorSuccess: true,
				DependsOn:             stepAddBook,
				Action:                deleteBookStep(env),
			},
			{
				Name:                  "get the deleted book",
				Ordinal:               10,
				DependsOnPriorSuccess: true,
				DependsOn:             stepDelete,
				Action:                getDeletedBookStep(env),
			},
			{
				Name:    "list books without a token",
				Ordinal: 11,
				Action: func(t *scenario.T) {
					resp := t.RequireResponse(env.books(t).Anonymous().ListAll(t.Context(), t.State()))
					expectStatus(t, resp, 403)
					expectBody(t, resp, "detail", servicedef.DetailNotAuth)
				},
			},
		},
	}
}

func addBookStep(env Env, prefix string) func(*scenario.T) {
	return func(t *scenario.T) {
		fields := newBookFields(prefix)
		resp := t.RequireResponse(env.books(t).Create(t.Context(), t.State(), fields))
		expectStatus(t, resp, 200)
		expectBookFields(t, resp, fields)
		id, ok := harness.IDString(resp.Field("id"))
		if t.ExpectTrue(ok, "service assigned a book id") && resp.IsSuccess() {
			rememberBook(t, id, fields)
		}
	}
}

func getBookStep(env Env) func(*scenario.T) {
	return func(t *scenario.T) {
		expected := t.ExpectedFields()
		id := t.CreatedResourceID()
		resp := t.RequireResponse(env.books(t).FetchByID(t.Context(), t.State(), id))
		expectStatus(t, resp, 200)
		expectBookFields(t, resp, expected)
		expectID(t, resp, id)
	}
}

func listContainsStep(env Env, checkAuthor bool) func(*scenario.T) {
	return func(t *scenario.T) {
		live := t.TrackedResources()
		var author harness.FieldMap
		if checkAuthor {
			author = t.ExpectedFields()
		}
		resp := t.RequireResponse(env.books(t).ListAll(t.Context(), t.State()))
		expectStatus(t, resp, 200)
		for _, name := range live {
			t.ExpectContains(resp.Body, name, "book list includes each book created in this session")
		}
		if checkAuthor {
			t.ExpectContains(resp.Body, author.Value(bookstore.FieldAuthor), "book list includes the updated author")
		}
	}
}

// deleteBookStep deletes the current book. The client marks it deleted in the session
// state, which also stops it being tracked as live.
func deleteBookStep(env Env) func(*scenario.T) {
	return func(t *scenario.T) {
		id := t.CreatedResourceID()
		resp := t.RequireResponse(env.books(t).DeleteByID(t.Context(), t.State(), id))
		expectStatus(t, resp, 200)
		expectStatusLine(t, resp, "HTTP/1.1 200 OK")
		expectBody(t, resp, "message", servicedef.MessageBookDeleted)
	}
}

func getDeletedBookStep(env Env) func(*scenario.T) {
	return func(t *scenario.T) {
		resp := t.RequireResponse(env.books(t).FetchByID(t.Context(), t.State(), t.DeletedResourceID()))
		expectStatus(t, resp, 404)
		expectBody(t, resp, "detail", servicedef.DetailBookNotFound)
	}
}
