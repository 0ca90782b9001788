package gopaginate

import (
	"context"
	"slices"
	"sync"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

type tCat struct {
	ID   int
	Name string
}

func newCats(n int) []tCat {
	ret := make([]tCat, 0, n)
	for i := 1; i <= n; i++ {
		ret = append(ret, tCat{ID: i, Name: "cat"})
	}

	return ret
}

// memorySource is a slice-backed Source recording every call.
type memorySource struct {
	docs     []tCat
	meta     any
	countErr error
	findErr  error

	mu           sync.Mutex
	countFilters []Filter
	findFilters  []Filter
	findOptions  []FindOptions
}

func newMemorySource(n int) *memorySource {
	return &memorySource{docs: newCats(n)}
}

func (m *memorySource) Count(_ context.Context, filter Filter) (int64, error) {
	m.mu.Lock()
	m.countFilters = append(m.countFilters, filter)
	m.mu.Unlock()

	if m.countErr != nil {
		return 0, m.countErr
	}

	return int64(len(m.docs)), nil
}

func (m *memorySource) Find(_ context.Context, filter Filter, options FindOptions) (FindResult[tCat], error) {
	m.mu.Lock()
	m.findFilters = append(m.findFilters, filter)
	m.findOptions = append(m.findOptions, options)
	m.mu.Unlock()

	if m.findErr != nil {
		return FindResult[tCat]{}, m.findErr
	}

	docs := m.docs
	if options.Skip != nil {
		docs = docs[min(*options.Skip, len(docs)):]
	}
	if options.Limit != nil {
		docs = docs[:min(*options.Limit, len(docs))]
	}

	return FindResult[tCat]{Rows: slices.Clone(docs), Meta: m.meta}, nil
}

func (m *memorySource) findCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.findOptions)
}
