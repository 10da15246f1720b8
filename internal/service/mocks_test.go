package service

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/bfarias-dev/movienotes/internal/apperror"
	"github.com/bfarias-dev/movienotes/internal/auth"
	"github.com/bfarias-dev/movienotes/internal/model"
	"github.com/bfarias-dev/movienotes/internal/repository"
)

// Hand-written in-memory mocks for the repository interfaces. They mirror
// the SQLite gateway's observable behavior (error taxonomy, ordering,
// ownership predicates) so the services under test cannot tell the
// difference.

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, user := range m.users {
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

type mockMovieRepo struct {
	movies map[int64]*model.Movie
	tags   map[int64][]string // movie id → tag names
	nextID int64
}

func newMockMovieRepo() *mockMovieRepo {
	return &mockMovieRepo{
		movies: make(map[int64]*model.Movie),
		tags:   make(map[int64][]string),
	}
}

func (m *mockMovieRepo) CreateMovie(_ context.Context, movie *model.Movie, tags []string) error {
	m.nextID++
	movie.ID = m.nextID
	stored := *movie
	m.movies[movie.ID] = &stored
	m.tags[movie.ID] = append([]string(nil), tags...)
	movie.Tags = append([]string(nil), tags...)
	return nil
}

func (m *mockMovieRepo) GetMovieByID(_ context.Context, id int64) (*model.Movie, error) {
	movie, ok := m.movies[id]
	if !ok {
		return nil, apperror.NotFound("movie", id)
	}
	result := *movie
	result.Tags = append([]string(nil), m.tags[id]...)
	return &result, nil
}

func (m *mockMovieRepo) ListMovies(_ context.Context, filter repository.MovieFilter) ([]model.Movie, error) {
	result := []model.Movie{}
	for _, movie := range m.movies {
		if movie.UserID != filter.UserID {
			continue
		}
		if filter.Title != "" && !strings.Contains(movie.Title, filter.Title) {
			continue
		}
		if len(filter.Tags) > 0 && !hasAnyTag(m.tags[movie.ID], filter.Tags) {
			continue
		}
		copied := *movie
		copied.Tags = append([]string(nil), m.tags[movie.ID]...)
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Title < result[j].Title })
	return result, nil
}

func hasAnyTag(tags, wanted []string) bool {
	for _, tag := range tags {
		for _, w := range wanted {
			if tag == w {
				return true
			}
		}
	}
	return false
}

func (m *mockMovieRepo) UpdateMovie(_ context.Context, movie *model.Movie) error {
	stored, ok := m.movies[movie.ID]
	if !ok || stored.UserID != movie.UserID {
		return apperror.NotFound("movie", movie.ID)
	}
	copied := *movie
	m.movies[movie.ID] = &copied
	return nil
}

func (m *mockMovieRepo) DeleteMovie(_ context.Context, id, ownerID int64) error {
	stored, ok := m.movies[id]
	if !ok {
		return apperror.NotFound("movie", id)
	}
	if stored.UserID != ownerID {
		return apperror.Forbidden("you do not own this movie")
	}
	delete(m.movies, id)
	delete(m.tags, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestUserService wires a UserService against in-memory mocks with a
// cheap bcrypt cost.
func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	svc := NewUserService(repo, auth.NewPasswordServiceForTest(4), testLogger())
	return svc, repo
}

// newTestMovieService wires a MovieService plus the user repo it checks
// existence against.
func newTestMovieService(t *testing.T) (*MovieService, *mockMovieRepo, *mockUserRepo) {
	t.Helper()
	movies := newMockMovieRepo()
	users := newMockUserRepo()
	svc := NewMovieService(movies, users, testLogger())
	return svc, movies, users
}
