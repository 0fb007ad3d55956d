package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// Book is a book record as the service returns it.
type Book struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	BookSummary   string `json:"book_summary"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of a 4xx response that has a single error message.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail []ValidationIssue `json:"detail"`
}

type ValidationIssue struct {
	Type  string        `json:"type"`
	Loc   []string      `json:"loc"`
	Msg   string        `json:"msg"`
	Input ldvalue.Value `json:"input"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

const (
	TokenTypeBearer = "bearer"

	MessageUserCreated   = "User created successfully"
	MessageBookDeleted   = "Book deleted successfully"
	DetailEmailTaken     = "Email already registered"
	DetailBadCredentials = "Incorrect email or password"
	DetailBookNotFound   = "Book not found"
	DetailNotAuth        = "Not authenticated"

	IssueMissing    = "missing"
	IssueIntParsing = "int_parsing"
	IssueStringType = "string_type"
	IssueJSON       = "json_invalid"

	MsgFieldRequired = "Field required"
)
