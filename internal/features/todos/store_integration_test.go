package todos_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/xyz-asif/todoapp/internal/database"
	"github.com/xyz-asif/todoapp/internal/features/todos"
	"github.com/xyz-asif/todoapp/internal/features/todos/todostest"
)

type MySQLRepositorySuite struct {
	suite.Suite
	db *sql.DB
}

func (s *MySQLRepositorySuite) SetupSuite() {
	ctx := context.Background()
	db, err := database.ConnectMySQL(ctx, os.Getenv("TEST_MYSQL_DSN"))
	s.Require().NoError(err)
	s.Require().NoError(database.MigrateMySQL(ctx, db))
	s.db = db
}

func (s *MySQLRepositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *MySQLRepositorySuite) TestContract() {
	todostest.RunRepositoryContract(s.T(), func(t *testing.T) todos.Repository {
		_, err := s.db.ExecContext(context.Background(), "DELETE FROM todos")
		require.NoError(t, err)
		return todos.NewMySQLRepository(s.db)
	})
}

func (s *MySQLRepositorySuite) TestSearchEscapesWildcards() {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, "DELETE FROM todos")
	s.Require().NoError(err)

	repo := todos.NewMySQLRepository(s.db)
	s.Require().NoError(repo.Create(ctx, &todos.Todo{Title: "50% off"}))
	s.Require().NoError(repo.Create(ctx, &todos.Todo{Title: "500 items"}))

	got, err := repo.ListFiltered(ctx, todos.Query{Search: "0%"})
	s.Require().NoError(err)
	s.Equal([]string{"50% off"}, todostest.Titles(got))
}

func TestMySQLRepository(t *testing.T) {
	if os.Getenv("TEST_MYSQL_DSN") == "" {
		t.Skip("TEST_MYSQL_DSN not set")
	}
	suite.Run(t, new(MySQLRepositorySuite))
}

type MongoRepositorySuite struct {
	suite.Suite
	mongo *database.MongoDB
}

func (s *MongoRepositorySuite) SetupSuite() {
	mdb, err := database.ConnectMongo(context.Background(), database.MongoConfig{
		URI:    os.Getenv("TEST_MONGO_URI"),
		DBName: "todoapp_test",
	})
	s.Require().NoError(err)
	s.mongo = mdb
}

func (s *MongoRepositorySuite) TearDownSuite() {
	if s.mongo == nil {
		return
	}
	ctx := context.Background()
	_ = s.mongo.Database.Drop(ctx)
	_ = s.mongo.Disconnect(ctx)
}

func (s *MongoRepositorySuite) newRepo(t *testing.T) todos.Repository {
	ctx := context.Background()
	require.NoError(t, s.mongo.Database.Collection("todos").Drop(ctx))
	repo, err := todos.NewMongoRepository(ctx, s.mongo.Database)
	require.NoError(t, err)
	return repo
}

func (s *MongoRepositorySuite) TestContract() {
	todostest.RunRepositoryContract(s.T(), s.newRepo)
}

func (s *MongoRepositorySuite) TestSearchQuotesRegex() {
	ctx := context.Background()
	repo := s.newRepo(s.T())
	s.Require().NoError(repo.Create(ctx, &todos.Todo{Title: "a.b"}))
	s.Require().NoError(repo.Create(ctx, &todos.Todo{Title: "axb"}))

	got, err := repo.ListFiltered(ctx, todos.Query{Search: "A.B"})
	s.Require().NoError(err)
	s.Equal([]string{"a.b"}, todostest.Titles(got))
}

func TestMongoRepository(t *testing.T) {
	if os.Getenv("TEST_MONGO_URI") == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	suite.Run(t, new(MongoRepositorySuite))
}
