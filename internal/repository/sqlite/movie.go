package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bfarias-dev/movienotes/internal/apperror"
	"github.com/bfarias-dev/movienotes/internal/model"
	"github.com/bfarias-dev/movienotes/internal/repository"
)

// compile-time check that *DB implements repository.MovieRepository
var _ repository.MovieRepository = (*DB)(nil)

// CreateMovie inserts a movie and its tag rows as a single transaction.
//
// The movie insert and the tag inserts must commit together: a crash after
// the movie row but before the tags would leave a note without its intended
// tags. Every tag row is stamped with the new movie id and the movie's
// owner inside the same transaction, which is what enforces the
// tag.user_id == movie.user_id invariant.
func (db *DB) CreateMovie(ctx context.Context, movie *model.Movie, tags []string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning create-movie tx: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback()

	now := time.Now()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	result, err := tx.ExecContext(ctx,
		`INSERT INTO movies (title, description, rating, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		movie.Title,
		movie.Description,
		movie.Rating,
		movie.UserID,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting movie (user=%d): %w", movie.UserID, err)
	}

	movie.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new movie id: %w", err)
	}

	for _, name := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tags (name, movie_id, user_id) VALUES (?, ?, ?)`,
			name, movie.ID, movie.UserID,
		); err != nil {
			return fmt.Errorf("sqlite: inserting tag %q for movie %d: %w", name, movie.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing create-movie tx: %w", err)
	}

	movie.Tags = append([]string(nil), tags...)
	return nil
}

// GetMovieByID retrieves a single movie with its tag names attached.
// Returns apperror.ErrNotFound if no movie exists with that id.
func (db *DB) GetMovieByID(ctx context.Context, id int64) (*model.Movie, error) {
	var m model.Movie

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, rating, user_id, created_at, updated_at
		 FROM movies WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Title, &m.Description, &m.Rating, &m.UserID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("movie", id)
		}
		return nil, fmt.Errorf("sqlite: getting movie %d: %w", id, err)
	}

	tags, err := db.tagsForMovies(ctx, m.UserID, []int64{m.ID})
	if err != nil {
		return nil, err
	}
	m.Tags = tags[m.ID]

	return &m, nil
}

// ListMovies returns the owner's movies matching the filter, ordered by
// title, with every tag belonging to each movie attached.
//
// The title filter is a single contains policy (LIKE %f%) regardless of
// whether a tag set is supplied — the pattern is built in exactly one
// place so the two branches cannot drift apart.
func (db *DB) ListMovies(ctx context.Context, filter repository.MovieFilter) ([]model.Movie, error) {
	titlePattern := "%" + filter.Title + "%"

	var (
		query string
		args  []any
	)
	if len(filter.Tags) > 0 {
		// Movies with at least one tag in the requested set. DISTINCT
		// because a movie can match on several of its tags at once.
		placeholders := strings.Repeat("?,", len(filter.Tags))
		placeholders = placeholders[:len(placeholders)-1]

		query = `SELECT DISTINCT m.id, m.title, m.description, m.rating, m.user_id, m.created_at, m.updated_at
			 FROM movies m
			 INNER JOIN tags t ON t.movie_id = m.id
			 WHERE m.user_id = ? AND m.title LIKE ? AND t.name IN (` + placeholders + `)
			 ORDER BY m.title`
		args = append(args, filter.UserID, titlePattern)
		for _, tag := range filter.Tags {
			args = append(args, tag)
		}
	} else {
		query = `SELECT id, title, description, rating, user_id, created_at, updated_at
			 FROM movies
			 WHERE user_id = ? AND title LIKE ?
			 ORDER BY title`
		args = append(args, filter.UserID, titlePattern)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing movies: %w", err)
	}
	defer rows.Close()

	movies := []model.Movie{}
	ids := []int64{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Rating, &m.UserID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning movie row: %w", err)
		}
		movies = append(movies, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating movies: %w", err)
	}

	if len(movies) == 0 {
		return movies, nil
	}

	tags, err := db.tagsForMovies(ctx, filter.UserID, ids)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		movies[i].Tags = tags[movies[i].ID]
	}

	return movies, nil
}

// tagsForMovies fetches tag names for a set of movie ids in one query,
// grouped by movie. Filtering on the denormalized user_id keeps this a
// single-table read.
func (db *DB) tagsForMovies(ctx context.Context, userID int64, movieIDs []int64) (map[int64][]string, error) {
	placeholders := strings.Repeat("?,", len(movieIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := []any{userID}
	for _, id := range movieIDs {
		args = append(args, id)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id, name FROM tags
		 WHERE user_id = ? AND movie_id IN (`+placeholders+`)
		 ORDER BY name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[int64][]string, len(movieIDs))
	for rows.Next() {
		var movieID int64
		var name string
		if err := rows.Scan(&movieID, &name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		tags[movieID] = append(tags[movieID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tags: %w", err)
	}

	return tags, nil
}

// UpdateMovie persists title, description and rating. The WHERE clause
// carries both id and user_id, so an update racing an ownership change (or
// a delete) affects zero rows instead of another user's record.
func (db *DB) UpdateMovie(ctx context.Context, movie *model.Movie) error {
	movie.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET title = ?, description = ?, rating = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		movie.Title,
		movie.Description,
		movie.Rating,
		movie.UpdatedAt,
		movie.ID,
		movie.UserID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating movie %d: %w", movie.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("movie", movie.ID)
	}

	return nil
}

// DeleteMovie removes a movie and all its tag rows in one transaction.
//
// Ownership is re-verified inside the transaction: the service layer has
// already checked it, but a concurrent mutation between that check and this
// call must not turn the delete into an action on someone else's record.
// Tags go first so no orphan tag rows can survive the movie.
func (db *DB) DeleteMovie(ctx context.Context, id, ownerID int64) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning delete-movie tx: %w", err)
	}
	defer tx.Rollback()

	var storedOwner int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM movies WHERE id = ?`, id,
	).Scan(&storedOwner)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperror.NotFound("movie", id)
		}
		return fmt.Errorf("sqlite: checking movie %d before delete: %w", id, err)
	}
	if storedOwner != ownerID {
		return apperror.Forbidden("you do not own this movie")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tags WHERE movie_id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting tags for movie %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: deleting movie %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing delete-movie tx: %w", err)
	}

	return nil
}
