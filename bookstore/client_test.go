package bookstore

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/fakestore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = scenario.Identity{Email: "reader@example.com", Password: "secret1"}

func withFakeStore(t *testing.T, action func(users *UserClient, books *BookClient)) {
	httphelpers.WithServer(fakestore.NewServer(nil), func(server *httptest.Server) {
		transport := harness.NewHTTPTransport(time.Second*5, nil)
		action(NewUserClient(server.URL, transport), NewBookClient(server.URL, transport))
	})
}

func loginAs(t *testing.T, users *UserClient, st *scenario.State) {
	ctx := context.Background()
	resp, err := users.Signup(ctx, Credentials(testIdentity))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	resp, err = users.Login(ctx, st, Credentials(testIdentity))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func sampleBook() harness.FieldMap {
	return harness.NewFieldMap(
		FieldBookName, "The Title",
		FieldAuthor, "The Author",
		FieldPublishedYear, 1999,
		FieldBookSummary, "A summary",
	)
}

func TestLoginStoresBearerToken(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		st := scenario.NewState()
		loginAs(t, users, st)
		token, err := st.AuthToken()
		require.NoError(t, err)
		assert.Regexp(t, `^Bearer \S+$`, token)
	})
}

func TestFailedLoginLeavesTokenAbsent(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		st := scenario.NewState()
		resp, err := users.Login(context.Background(), st, Credentials(testIdentity))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "HTTP/1.1 400 Bad Request", resp.StatusLine)
		assert.False(t, st.Has(scenario.KeyAuthToken))
	})
}

func TestLoginWithNoFieldsSendsEmptyObject(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		resp, err := users.Login(context.Background(), scenario.NewState(), harness.FieldMap{})
		require.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)
		assert.Equal(t, "missing", resp.Field("detail[0].type").StringValue())
		assert.Equal(t, "email", resp.Field("detail[0].loc[1]").StringValue())
		assert.Equal(t, "password", resp.Field("detail[1].loc[1]").StringValue())
	})
}

func TestBookLifecycleUpdatesState(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		ctx := context.Background()
		st := scenario.NewState()
		loginAs(t, users, st)

		resp, err := books.Create(ctx, st, sampleBook())
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
		id, err := st.CreatedResourceID()
		require.NoError(t, err)
		assert.Equal(t, "1", id)
		assert.Equal(t, "The Title", resp.Field("name").StringValue())

		resp, err = books.Update(ctx, st, id, sampleBook().With(harness.NewFieldMap(FieldBookName, "New Title")))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "New Title", resp.Field("name").StringValue())
		assert.Equal(t, 1999, resp.Field("published_year").IntValue())

		resp, err = books.FetchByID(ctx, st, id)
		require.NoError(t, err)
		assert.Equal(t, "New Title", resp.Field("name").StringValue())

		resp, err = books.ListAll(ctx, st)
		require.NoError(t, err)
		assert.Equal(t, 1, resp.JSON().Count())

		resp, err = books.DeleteByID(ctx, st, id)
		require.NoError(t, err)
		assert.Equal(t, "Book deleted successfully", resp.Field("message").StringValue())
		assert.False(t, st.Has(scenario.KeyCreatedResourceID))
		deleted, err := st.DeletedResourceID()
		require.NoError(t, err)
		assert.Equal(t, id, deleted)

		resp, err = books.FetchByID(ctx, st, id)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "Book not found", resp.Field("detail").StringValue())
	})
}

func TestFailedCreateDoesNotSetResourceID(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		st := scenario.NewState()
		loginAs(t, users, st)
		resp, err := books.Create(context.Background(), st, sampleBook().With(harness.NewFieldMap(FieldPublishedYear, "not a year")))
		require.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)
		assert.False(t, st.Has(scenario.KeyCreatedResourceID))
	})
}

func TestAnonymousClientSendsNoToken(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(403))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		books := NewBookClient(server.URL, harness.NewHTTPTransport(time.Second, nil))
		st := scenario.NewState()
		st.SetAuthToken("Bearer abc")

		_, err := books.ListAll(context.Background(), st)
		require.NoError(t, err)
		r := <-requestsCh
		assert.Equal(t, "Bearer abc", r.Request.Header.Get("Authorization"))
		assert.Equal(t, "/books/", r.Request.URL.Path)

		_, err = books.Anonymous().ListAll(context.Background(), st)
		require.NoError(t, err)
		r = <-requestsCh
		assert.Empty(t, r.Request.Header.Get("Authorization"))
	})
}

func TestUnrecognizedFieldIsConfigurationError(t *testing.T) {
	books := NewBookClient("http://localhost:1", harness.NewHTTPTransport(time.Second, nil))
	_, err := books.Create(context.Background(), scenario.NewState(), harness.NewFieldMap("isbn", "123"))
	assert.True(t, harness.IsConfigurationError(err))
	assert.True(t, scenario.IsFatal(err))
}

func TestUnreachableServiceIsTransportError(t *testing.T) {
	handler := httphelpers.HandlerWithStatus(200)
	var url string
	httphelpers.WithServer(handler, func(server *httptest.Server) { url = server.URL })
	books := NewBookClient(url, harness.NewHTTPTransport(time.Second, nil))
	_, err := books.ListAll(context.Background(), scenario.NewState())
	assert.True(t, harness.IsTransportError(err))
	assert.False(t, scenario.IsFatal(err))
}

// readBookFields converts a book response body to logical field names, without the id.
func readBookFields(t *testing.T, resp harness.Response) harness.FieldMap {
	wire, ok := harness.FieldMapFromValue(resp.JSON())
	require.True(t, ok, "response body is not an object: %s", resp.Body)
	wire.Delete("id")
	fields, err := BookSchema().FromWire(wire)
	require.NoError(t, err)
	return fields
}

func TestCreatedBookReadsBackWithSameFields(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		ctx := context.Background()
		st := scenario.NewState()
		loginAs(t, users, st)

		created, err := books.Create(ctx, st, sampleBook())
		require.NoError(t, err)
		require.Equal(t, 200, created.StatusCode)
		id, err := st.CreatedResourceID()
		require.NoError(t, err)

		fetched, err := books.FetchByID(ctx, st, id)
		require.NoError(t, err)
		require.Equal(t, 200, fetched.StatusCode)
		assert.JSONEq(t, sampleBook().AsValue().JSONString(), readBookFields(t, fetched).AsValue().JSONString())
	})
}

func TestFetchingUnchangedBookTwiceGivesSameRecord(t *testing.T) {
	withFakeStore(t, func(users *UserClient, books *BookClient) {
		ctx := context.Background()
		st := scenario.NewState()
		loginAs(t, users, st)

		_, err := books.Create(ctx, st, sampleBook())
		require.NoError(t, err)
		id, err := st.CreatedResourceID()
		require.NoError(t, err)

		first, err := books.FetchByID(ctx, st, id)
		require.NoError(t, err)
		second, err := books.FetchByID(ctx, st, id)
		require.NoError(t, err)
		require.Equal(t, 200, first.StatusCode)
		require.Equal(t, 200, second.StatusCode)
		assert.JSONEq(t, string(first.Body), string(second.Body))
		id1, _ := harness.IDString(first.Field("id"))
		assert.Equal(t, id, id1)
	})
}
