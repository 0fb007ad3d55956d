package bookstore

import (
	"context"
	"net/http"

	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
	"github.com/bookstore-qa/bookstore-contract-tests/framework/scenario"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type caller struct {
	baseURL   string
	transport harness.Transport
}

func (c caller) call(ctx context.Context, spec harness.RequestSpec) (harness.Response, error) {
	req, err := harness.Build(c.baseURL, spec)
	if err != nil {
		return harness.Response{}, err
	}
	return c.transport.Send(ctx, req)
}

// BookClient performs the book lifecycle operations.
//
// Every method returns the service's response as-is, whatever its status; only a failure
// to build the request or to reach the service is an error. Requests carry the session's
// auth token if there is one, unless the client is anonymous.
type BookClient struct {
	caller
	anonymous bool
}

func NewBookClient(baseURL string, transport harness.Transport) *BookClient {
	return &BookClient{caller: caller{baseURL: baseURL, transport: transport}}
}

// Anonymous returns a copy of the client that never sends an auth token.
func (c *BookClient) Anonymous() *BookClient {
	c1 := *c
	c1.anonymous = true
	return &c1
}

func (c *BookClient) token(st *scenario.State) ldvalue.OptionalString {
	if c.anonymous {
		return ldvalue.OptionalString{}
	}
	return st.AuthTokenIfSet()
}

// Create adds a book. On success, the ID assigned by the service becomes the session's
// created resource ID.
func (c *BookClient) Create(ctx context.Context, st *scenario.State, fields harness.FieldMap) (harness.Response, error) {
	resp, err := c.call(ctx, harness.RequestSpec{
		Method:       http.MethodPost,
		PathTemplate: BooksPath,
		Token:        c.token(st),
		Fields:       fields,
		Schema:       BookSchema(),
	})
	if err == nil && resp.IsSuccess() {
		if id, ok := harness.IDString(resp.Field("id")); ok {
			st.SetCreatedResourceID(id)
		}
	}
	return resp, err
}

// Update replaces the book's fields. The service has no partial update, so the field map
// should contain every field, including those that are not changing.
func (c *BookClient) Update(ctx context.Context, st *scenario.State, id string, fields harness.FieldMap) (harness.Response, error) {
	return c.call(ctx, harness.RequestSpec{
		Method:       http.MethodPut,
		PathTemplate: BookByIDPath,
		PathParams:   map[string]string{BookIDParam: id},
		Token:        c.token(st),
		Fields:       fields,
		Schema:       BookSchema(),
	})
}

// FetchByID gets one book. A book that does not exist is a normal 404 response.
func (c *BookClient) FetchByID(ctx context.Context, st *scenario.State, id string) (harness.Response, error) {
	return c.call(ctx, harness.RequestSpec{
		Method:       http.MethodGet,
		PathTemplate: BookByIDPath,
		PathParams:   map[string]string{BookIDParam: id},
		Token:        c.token(st),
	})
}

// ListAll gets every book the service has, in one response.
func (c *BookClient) ListAll(ctx context.Context, st *scenario.State) (harness.Response, error) {
	return c.call(ctx, harness.RequestSpec{
		Method:       http.MethodGet,
		PathTemplate: BooksPath,
		Token:        c.token(st),
	})
}

// DeleteByID deletes a book. On success, the book is no longer the session's created
// resource, and its ID is kept as the deleted resource ID.
func (c *BookClient) DeleteByID(ctx context.Context, st *scenario.State, id string) (harness.Response, error) {
	resp, err := c.call(ctx, harness.RequestSpec{
		Method:       http.MethodDelete,
		PathTemplate: BookByIDPath,
		PathParams:   map[string]string{BookIDParam: id},
		Token:        c.token(st),
	})
	if err == nil && resp.IsSuccess() {
		st.MarkResourceDeleted(id)
	}
	return resp, err
}

// UserClient performs user registration and login. These requests never carry a token.
type UserClient struct {
	caller
}

func NewUserClient(baseURL string, transport harness.Transport) *UserClient {
	return &UserClient{caller: caller{baseURL: baseURL, transport: transport}}
}

// Signup registers a user. Fields that are absent from the map are left out of the
// request, which is how a test checks the service's handling of missing parameters.
func (c *UserClient) Signup(ctx context.Context, fields harness.FieldMap) (harness.Response, error) {
	return c.call(ctx, harness.RequestSpec{
		Method:       http.MethodPost,
		PathTemplate: SignupPath,
		Fields:       fields,
		Schema:       UserSchema(),
	})
}

// Login logs in. On success, the returned access token becomes the session's auth token,
// in the form of an Authorization header value.
func (c *UserClient) Login(ctx context.Context, st *scenario.State, fields harness.FieldMap) (harness.Response, error) {
	resp, err := c.call(ctx, harness.RequestSpec{
		Method:       http.MethodPost,
		PathTemplate: LoginPath,
		Fields:       fields,
		Schema:       UserSchema(),
	})
	if err == nil && resp.IsSuccess() {
		if token := resp.Field("access_token"); token.Type() == ldvalue.StringType && token.StringValue() != "" {
			st.SetAuthToken("Bearer " + token.StringValue())
		}
	}
	return resp, err
}

// Credentials returns a field map for signup or login.
func Credentials(id scenario.Identity) harness.FieldMap {
	return harness.NewFieldMap(FieldEmail, id.Email, FieldPassword, id.Password)
}
