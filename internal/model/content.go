package model

import "time"

// Models for the content domain. Every row carries CreatedAt (set on insert)
// and ModifiedAt (refreshed on every write); both are owned by the database.

type Blog struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Tagline    string    `json:"tagline"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// BlogInput holds the writable fields of a Blog.
type BlogInput struct {
	Name    string `json:"name" validate:"required,max=100,nonul"`
	Tagline string `json:"tagline" validate:"required,nonul"`
}

type Author struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type AuthorInput struct {
	Name  string `json:"name" validate:"required,max=50,nonul"`
	Email string `json:"email" validate:"required,email,max=254,nonul"`
}

// AuthorBio is the one-to-one biography of an Author.
type AuthorBio struct {
	ID         int64     `json:"id"`
	Author     int64     `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type AuthorBioInput struct {
	Body string `json:"body" validate:"required,nonul"`
}

// Entry is a blog post. Authors holds the IDs of the many-to-many authors,
// sorted ascending.
type Entry struct {
	ID         int64     `json:"id"`
	Blog       int64     `json:"blog"`
	Headline   string    `json:"headline"`
	BodyText   *string   `json:"body_text"`
	PubDate    *Date     `json:"pub_date"`
	ModDate    *Date     `json:"mod_date"`
	Authors    []int64   `json:"authors"`
	NComments  int       `json:"n_comments"`
	NPingbacks int       `json:"n_pingbacks"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// EntryInput holds the writable fields of an Entry. Counters left out of a
// create request are stored as 0.
type EntryInput struct {
	Blog       *int64  `json:"blog" validate:"required,gt=0"`
	Headline   string  `json:"headline" validate:"required,max=255,nonul"`
	BodyText   *string `json:"body_text" validate:"omitempty,nonul"`
	PubDate    *Date   `json:"pub_date"`
	ModDate    *Date   `json:"mod_date"`
	Authors    []int64 `json:"authors" validate:"omitempty,dive,gt=0"`
	NComments  int     `json:"n_comments" validate:"min=-2147483648,max=2147483647"`
	NPingbacks int     `json:"n_pingbacks" validate:"min=-2147483648,max=2147483647"`
	Rating     int     `json:"rating" validate:"min=-2147483648,max=2147483647"`
}

type Comment struct {
	ID         int64     `json:"id"`
	Entry      int64     `json:"entry"`
	Body       string    `json:"body"`
	Author     *int64    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type CommentInput struct {
	Entry  *int64 `json:"entry" validate:"required,gt=0"`
	Body   string `json:"body" validate:"required,nonul"`
	Author *int64 `json:"author" validate:"omitempty,gt=0"`
}
