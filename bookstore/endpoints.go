package bookstore

import (
	"github.com/bookstore-qa/bookstore-contract-tests/framework/harness"
)

// Paths of the service's endpoints, relative to the base URL.
const (
	SignupPath   = "signup"
	LoginPath    = "login"
	BooksPath    = "books/"
	BookByIDPath = "/books/{book_id}"
	HealthPath   = "health"

	BookIDParam = "book_id"
)

// Logical field names. Only the book name differs from its name on the wire.
const (
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldBookName      = "bookName"
	FieldAuthor        = "author"
	FieldPublishedYear = "published_year"
	FieldBookSummary   = "book_summary"
)

// BookSchema returns the field schema for book create and update requests.
func BookSchema() *harness.FieldSchema {
	return &harness.FieldSchema{
		Resource: "book",
		Fields: []harness.SchemaField{
			{Name: FieldBookName, WireName: "name"},
			{Name: FieldAuthor},
			{Name: FieldPublishedYear},
			{Name: FieldBookSummary},
		},
	}
}

// UserSchema returns the field schema for signup and login requests.
func UserSchema() *harness.FieldSchema {
	return &harness.FieldSchema{
		Resource: "user",
		Fields: []harness.SchemaField{
			{Name: FieldEmail},
			{Name: FieldPassword},
		},
	}
}

// HealthURL returns the URL of the health check endpoint.
func HealthURL(baseURL string) string {
	return harness.JoinURL(baseURL, HealthPath)
}
