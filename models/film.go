package models

import (
	"time"
)

// Film is a catalogue entry. Rate caches the number of likes and is kept in
// step with the likes table by the store, inside the same transaction as the
// like or unlike that changed it.
type Film struct {
	ID          int64      `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"index:idx_film_name;not null" json:"name"`
	Description string     `json:"description"`
	ReleaseDate time.Time  `gorm:"index:idx_release_date" json:"releaseDate"`
	Duration    int        `json:"duration"`
	Rate        int        `gorm:"not null;default:0" json:"rate"`
	MpaID       int64      `json:"-"`
	Mpa         Mpa        `gorm:"foreignKey:MpaID" json:"mpa"`
	Genres      []Genre    `gorm:"many2many:film_genres;" json:"genres"`
	Directors   []Director `gorm:"many2many:film_directors;" json:"directors"`
}

// Genre, Mpa and Director are attribute tags attached to films.
type Genre struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Mpa struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Director struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"index:idx_director_name;not null" json:"name"`
}

// Like records that a user endorses a film. The pair is the primary key, so
// a user can like a film at most once.
type Like struct {
	FilmID int64 `gorm:"primaryKey;autoIncrement:false" json:"filmId"`
	UserID int64 `gorm:"primaryKey;autoIncrement:false;index:idx_like_user" json:"userId"`
}

// HasGenre reports whether the film is tagged with the genre.
func (f *Film) HasGenre(genreID int64) bool {
	for _, g := range f.Genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}

// HasDirector reports whether the film was directed by the director.
func (f *Film) HasDirector(directorID int64) bool {
	for _, d := range f.Directors {
		if d.ID == directorID {
			return true
		}
	}
	return false
}

// Sortable interface implementation used by the ranking pipeline

// GetID returns the film ID, used as the final tie-break
func (f Film) GetID() int64 {
	return f.ID
}

// GetRate returns the cached like counter
func (f Film) GetRate() int {
	return f.Rate
}

// GetReleaseDateUnix returns the release date as a Unix timestamp
func (f Film) GetReleaseDateUnix() int64 {
	return f.ReleaseDate.Unix()
}

// RankedFilm is a film together with the live like count it was ranked by.
type RankedFilm struct {
	Film
	LikeCount int `json:"likeCount"`
}

// GetLikeCount returns the live like count
func (r RankedFilm) GetLikeCount() int {
	return r.LikeCount
}

// FilmsOf strips ranking data, preserving order.
func FilmsOf(ranked []RankedFilm) []Film {
	films := make([]Film, len(ranked))
	for i := range ranked {
		films[i] = ranked[i].Film
	}
	return films
}
