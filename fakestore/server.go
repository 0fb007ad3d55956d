package fakestore

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/framework"
	"github.com/bookstore-qa/bookstore-contract-tests/servicedef"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Server is an in-memory book store service.
type Server struct {
	store  *memoryStore
	logger framework.Logger
	router *chi.Mux
}

// NewServer creates a Server with no users and no books. Requests are logged to the
// logger, if it is not nil.
func NewServer(logger framework.Logger) *Server {
	if logger == nil {
		logger = framework.NullLogger()
	}
	s := &Server{store: newMemoryStore(), logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestLog)

	r.Get("/health", s.health)
	r.Post("/signup", s.signup)
	r.Post("/login", s.login)
	r.Route("/books", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/", s.listBooks)
		r.Post("/", s.createBook)
		r.Get("/{book_id}", s.getBook)
		r.Put("/{book_id}", s.updateBook)
		r.Delete("/{book_id}", s.deleteBook)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			writeDetail(w, http.StatusForbidden, servicedef.DetailNotAuth)
			return
		}
		if !s.store.validToken(token) {
			writeDetail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, servicedef.HealthResponse{Status: "ok"})
}

func (s *Server) signup(w http.ResponseWriter, r *http.Request) {
	body := readBody(r.Body)
	email := body.requireString("email")
	password := body.requireString("password")
	if !body.ok() {
		writeIssues(w, body.issues)
		return
	}
	if !s.store.addUser(email, password) {
		writeDetail(w, http.StatusBadRequest, servicedef.DetailEmailTaken)
		return
	}
	writeJSON(w, http.StatusOK, servicedef.MessageResponse{Message: servicedef.MessageUserCreated})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	body := readBody(r.Body)
	email := body.requireString("email")
	password := body.requireString("password")
	if !body.ok() {
		writeIssues(w, body.issues)
		return
	}
	token := s.store.login(email, password)
	if token == "" {
		writeDetail(w, http.StatusBadRequest, servicedef.DetailBadCredentials)
		return
	}
	writeJSON(w, http.StatusOK, servicedef.TokenResponse{AccessToken: token, TokenType: servicedef.TokenTypeBearer})
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.allBooks())
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	book, ok := readBook(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.store.addBook(book))
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	book, found := s.store.getBook(id)
	if !found {
		writeDetail(w, http.StatusNotFound, servicedef.DetailBookNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	book, ok := readBook(w, r)
	if !ok {
		return
	}
	book.ID = id
	if !s.store.replaceBook(book) {
		writeDetail(w, http.StatusNotFound, servicedef.DetailBookNotFound)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(w, r)
	if !ok {
		return
	}
	if !s.store.deleteBook(id) {
		writeDetail(w, http.StatusNotFound, servicedef.DetailBookNotFound)
		return
	}
	writeJSON(w, http.StatusOK, servicedef.MessageResponse{Message: servicedef.MessageBookDeleted})
}

func readBook(w http.ResponseWriter, r *http.Request) (servicedef.Book, bool) {
	body := readBody(r.Body)
	book := servicedef.Book{
		Name:          body.requireString("name"),
		Author:        body.requireString("author"),
		PublishedYear: body.requireInt("published_year"),
		BookSummary:   body.requireString("book_summary"),
	}
	if !body.ok() {
		writeIssues(w, body.issues)
		return book, false
	}
	return book, true
}

func bookID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "book_id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeIssues(w, []servicedef.ValidationIssue{{
			Type: servicedef.IssueIntParsing,
			Loc:  []string{"path", "book_id"},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
		}})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, servicedef.ErrorResponse{Detail: detail})
}

func writeIssues(w http.ResponseWriter, issues []servicedef.ValidationIssue) {
	writeJSON(w, http.StatusUnprocessableEntity, servicedef.ValidationErrorResponse{Detail: issues})
}
