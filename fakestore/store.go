package fakestore

import (
	"sort"
	"sync"

	"github.com/bookstore-qa/bookstore-contract-tests/servicedef"

	"github.com/google/uuid"
)

type memoryStore struct {
	users  map[string]string
	tokens map[string]string
	books  map[int]servicedef.Book
	lastID int
	lock   sync.Mutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:  make(map[string]string),
		tokens: make(map[string]string),
		books:  make(map[int]servicedef.Book),
	}
}

// addUser returns false if the email is already registered.
func (s *memoryStore) addUser(email, password string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.users[email]; ok {
		return false
	}
	s.users[email] = password
	return true
}

// login returns a new access token, or "" if the credentials are wrong.
func (s *memoryStore) login(email, password string) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	if p, ok := s.users[email]; !ok || p != password {
		return ""
	}
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

func (s *memoryStore) validToken(token string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	_, ok := s.tokens[token]
	return ok
}

func (s *memoryStore) addBook(b servicedef.Book) servicedef.Book {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.lastID++
	b.ID = s.lastID
	s.books[b.ID] = b
	return b
}

func (s *memoryStore) getBook(id int) (servicedef.Book, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	b, ok := s.books[id]
	return b, ok
}

func (s *memoryStore) replaceBook(b servicedef.Book) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.books[b.ID]; !ok {
		return false
	}
	s.books[b.ID] = b
	return true
}

func (s *memoryStore) deleteBook(id int) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.books[id]; !ok {
		return false
	}
	delete(s.books, id)
	return true
}

func (s *memoryStore) allBooks() []servicedef.Book {
	s.lock.Lock()
	ret := make([]servicedef.Book, 0, len(s.books))
	for _, b := range s.books {
		ret = append(ret, b)
	}
	s.lock.Unlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].ID < ret[j].ID })
	return ret
}
