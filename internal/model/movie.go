package model

import "time"

// Movie represents one personal movie note: a title, a short review and a
// 1–5 rating, owned by exactly one user. UserID is immutable after creation;
// there is no transfer-of-ownership operation.
type Movie struct {
	ID          int64     `json:"id"          db:"id"`
	Title       string    `json:"title"       db:"title"`
	Description string    `json:"description" db:"description"`
	Rating      int       `json:"rating"      db:"rating"`
	UserID      int64     `json:"userId"      db:"user_id"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// Tag is a free-form label attached to a movie at creation time.
//
// UserID is a denormalized copy of the owning movie's UserID so tag-based
// listing can filter by owner without a join through movies. The invariant
// tag.UserID == movie.UserID is enforced by stamping both inside the same
// insert transaction — tags are never created through any other path.
//
// Tag names are NOT unique: a user may reuse the same tag name across movies.
type Tag struct {
	ID      int64  `json:"id"      db:"id"`
	Name    string `json:"name"    db:"name"`
	MovieID int64  `json:"movieId" db:"movie_id"`
	UserID  int64  `json:"userId"  db:"user_id"`
}
