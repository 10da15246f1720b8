package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bfarias-dev/movienotes/internal/apperror"
	"github.com/bfarias-dev/movienotes/internal/model"
	"github.com/bfarias-dev/movienotes/internal/repository"
	"github.com/bfarias-dev/movienotes/internal/rules"
)

// MovieService handles the movie-notes catalog: creation, listing with
// title and tag filters, conditional updates and cascade deletion, all
// gated by ownership.
type MovieService struct {
	movies repository.MovieRepository
	users  repository.UserRepository
	logger *slog.Logger
}

// NewMovieService creates a MovieService with all required dependencies.
func NewMovieService(movies repository.MovieRepository, users repository.UserRepository, logger *slog.Logger) *MovieService {
	return &MovieService{
		movies: movies,
		users:  users,
		logger: logger,
	}
}

// List returns the owner's movies, optionally narrowed by a title
// substring and a tag set, ordered by title with tags attached.
func (s *MovieService) List(ctx context.Context, userID int64, titleFilter string, tags []string) ([]model.Movie, error) {
	if userID == 0 {
		return nil, apperror.MissingField("user_id")
	}

	// Normalize the tag set: trim entries, drop blanks.
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}

	movies, err := s.movies.ListMovies(ctx, repository.MovieFilter{
		UserID: userID,
		Title:  strings.TrimSpace(titleFilter),
		Tags:   cleaned,
	})
	if err != nil {
		s.logger.Error("failed to list movies",
			slog.Int64("userId", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing movies: %w", err)
	}

	return movies, nil
}

// Get returns one movie with its tags. A movie that exists but belongs to
// another user yields the same NotFound as a movie that does not exist —
// reads never reveal whether someone else's record is present.
func (s *MovieService) Get(ctx context.Context, movieID, userID int64) (*model.Movie, error) {
	movie, err := s.movies.GetMovieByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if movie.UserID != userID {
		return nil, apperror.NotFound("movie", movieID)
	}
	return movie, nil
}

// CreateMovieInput carries the fields of a new movie note. Rating is a
// pointer so "absent" is distinguishable from a supplied zero.
type CreateMovieInput struct {
	Title       string
	Description string
	Rating      *int
	Tags        []string
}

// Create validates and stores a new movie note with its tags.
//
// Pipeline: presence checks (title, description, rating) and the rating
// range first, the user-existence check last. The repository commits the
// movie and all tag rows in one transaction, so a failure partway leaves
// no trace.
func (s *MovieService) Create(ctx context.Context, userID int64, in CreateMovieInput) (*model.Movie, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)

	if err := rules.Required(
		rules.Field{Name: "title", Value: title},
		rules.Field{Name: "description", Value: description},
	); err != nil {
		return nil, err
	}
	if in.Rating == nil {
		return nil, apperror.MissingField("rating")
	}
	if err := rules.ValidateRating(*in.Rating); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(in.Tags))
	for _, tag := range in.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	movie := &model.Movie{
		Title:       title,
		Description: description,
		Rating:      *in.Rating,
		UserID:      userID,
	}
	if err := s.movies.CreateMovie(ctx, movie, tags); err != nil {
		s.logger.Error("failed to create movie",
			slog.Int64("userId", userID),
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating movie: %w", err)
	}

	s.logger.Info("movie created",
		slog.Int64("id", movie.ID),
		slog.Int64("userId", userID),
		slog.String("title", movie.Title),
	)

	return movie, nil
}

// UpdateMovieInput carries the optional fields of a movie update. A nil
// pointer means "leave unchanged".
type UpdateMovieInput struct {
	Title       *string
	Description *string
	Rating      *int
}

// Update merges the supplied fields into an existing movie.
//
// Pipeline: the movie must exist (NotFound), the caller must own it
// (Forbidden — unlike reads, mutations distinguish the two), a supplied
// rating must be in range, and unsupplied fields resolve to their current
// values. The repository re-verifies ownership in the UPDATE predicate.
func (s *MovieService) Update(ctx context.Context, movieID, userID int64, in UpdateMovieInput) (*model.Movie, error) {
	movie, err := s.movies.GetMovieByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if err := rules.AuthorizeMutation(userID, movie.UserID); err != nil {
		return nil, err
	}
	if in.Rating != nil {
		if err := rules.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
	}

	movie.Title = rules.Resolve(in.Title, movie.Title)
	movie.Description = rules.Resolve(in.Description, movie.Description)
	movie.Rating = rules.Resolve(in.Rating, movie.Rating)

	if err := s.movies.UpdateMovie(ctx, movie); err != nil {
		s.logger.Error("failed to update movie",
			slog.Int64("id", movieID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("movie updated", slog.Int64("id", movie.ID))

	return movie, nil
}

// Delete removes a movie and all its tags. Same existence and ownership
// checks as Update; the repository performs the cascade in one transaction
// with ownership re-verified inside it.
func (s *MovieService) Delete(ctx context.Context, movieID, userID int64) error {
	movie, err := s.movies.GetMovieByID(ctx, movieID)
	if err != nil {
		return err
	}
	if err := rules.AuthorizeMutation(userID, movie.UserID); err != nil {
		return err
	}

	if err := s.movies.DeleteMovie(ctx, movieID, userID); err != nil {
		return err
	}

	s.logger.Info("movie deleted",
		slog.Int64("id", movieID),
		slog.Int64("userId", userID),
	)
	return nil
}
