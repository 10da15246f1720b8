// Package repository declares the storage gateway contracts consumed by the
// service layer. Services depend on these interfaces, never on the SQLite
// implementation, so tests can inject in-memory mocks.
package repository

import (
	"context"

	"github.com/bfarias-dev/movienotes/internal/model"
)

// MovieFilter narrows a movie listing. UserID is always required by the
// service layer; Title and Tags are optional refinements.
type MovieFilter struct {
	UserID int64
	Title  string   // substring match on title; empty matches everything
	Tags   []string // movies with at least one tag in this set; empty disables
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// GetUserByEmail returns (nil, nil) when no user has the email —
	// absence is an expected outcome for uniqueness checks, not an error.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

type MovieRepository interface {
	// CreateMovie inserts the movie and all its tag rows in one
	// transaction. Each tag row is stamped with the new movie id and the
	// movie's owner.
	CreateMovie(ctx context.Context, movie *model.Movie, tags []string) error
	// GetMovieByID returns the movie with its tag names attached.
	GetMovieByID(ctx context.Context, id int64) (*model.Movie, error)
	// ListMovies returns matching movies ordered by title, tags attached.
	ListMovies(ctx context.Context, filter MovieFilter) ([]model.Movie, error)
	// UpdateMovie persists title/description/rating. The owner id is part
	// of the UPDATE predicate so the check-then-act window is closed at the
	// statement level.
	UpdateMovie(ctx context.Context, movie *model.Movie) error
	// DeleteMovie removes the movie and its tag rows in one transaction,
	// re-verifying ownership inside it.
	DeleteMovie(ctx context.Context, id, ownerID int64) error
}
