package store

import (
	"context"
	"errors"
	"fmt"

	"film-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore implements Store on top of gorm. Every mutation that touches
// more than one row runs in a single transaction.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over an already migrated database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// =============================================================================
// Likes
// =============================================================================

func (s *GormStore) LikesOf(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).Order("film_id").Pluck("film_id", &ids).Error
	return ids, err
}

func (s *GormStore) LikersOf(ctx context.Context, filmID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("film_id = ?", filmID).Order("user_id").Pluck("user_id", &ids).Error
	return ids, err
}

func (s *GormStore) LikeCounts(ctx context.Context) (map[int64]int, error) {
	var rows []struct {
		FilmID int64
		Total  int
	}
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("film_id, COUNT(*) AS total").Group("film_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, r := range rows {
		counts[r.FilmID] = r.Total
	}
	return counts, nil
}

func (s *GormStore) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	var added bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{FilmID: filmID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		added = res.RowsAffected > 0
		if !added {
			return nil
		}
		return refreshRate(tx, filmID)
	})
	return added, err
}

func (s *GormStore) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	var removed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("film_id = ? AND user_id = ?", filmID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		if !removed {
			return nil
		}
		return refreshRate(tx, filmID)
	})
	return removed, err
}

// refreshRate recomputes the cached counter from the likes table. It must run
// inside the transaction that changed the likes.
func refreshRate(tx *gorm.DB, filmID int64) error {
	var count int64
	if err := tx.Model(&models.Like{}).Where("film_id = ?", filmID).Count(&count).Error; err != nil {
		return fmt.Errorf("count likes of film %d: %w", filmID, err)
	}
	return tx.Model(&models.Film{}).Where("id = ?", filmID).Update("rate", count).Error
}

// =============================================================================
// Friendships
// =============================================================================

func (s *GormStore) FriendsOf(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ?", userID).Order("friend_id").Pluck("friend_id", &ids).Error
	return ids, err
}

func (s *GormStore) AddFriend(ctx context.Context, userID, friendID int64) (bool, error) {
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Friendship{UserID: userID, FriendID: friendID})
	return res.RowsAffected > 0, res.Error
}

func (s *GormStore) RemoveFriend(ctx context.Context, userID, friendID int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).Delete(&models.Friendship{})
	return res.RowsAffected > 0, res.Error
}

// =============================================================================
// Catalog
// =============================================================================

// hydrated preloads every association a film is returned with
func (s *GormStore) hydrated(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id") }).
		Preload("Directors", func(db *gorm.DB) *gorm.DB { return db.Order("directors.id") })
}

func (s *GormStore) Film(ctx context.Context, id int64) (*models.Film, error) {
	var film models.Film
	if err := s.hydrated(ctx).First(&film, id).Error; err != nil {
		return nil, translate(err)
	}
	return &film, nil
}

func (s *GormStore) FilmsByIDs(ctx context.Context, ids []int64) ([]models.Film, error) {
	films := []models.Film{}
	if len(ids) == 0 {
		return films, nil
	}
	err := s.hydrated(ctx).Where("films.id IN ?", ids).Order("films.id").Find(&films).Error
	return films, err
}

func (s *GormStore) Films(ctx context.Context) ([]models.Film, error) {
	films := []models.Film{}
	err := s.hydrated(ctx).Order("films.id").Find(&films).Error
	return films, err
}

func (s *GormStore) Director(ctx context.Context, id int64) (*models.Director, error) {
	var d models.Director
	if err := s.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *GormStore) Genre(ctx context.Context, id int64) (*models.Genre, error) {
	var g models.Genre
	if err := s.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (s *GormStore) User(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *GormStore) UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

// =============================================================================
// Reviews and votes
// =============================================================================

func (s *GormStore) VotesOf(ctx context.Context, reviewID int64) ([]models.UsefulVote, error) {
	votes := []models.UsefulVote{}
	err := s.db.WithContext(ctx).Where("review_id = ?", reviewID).Order("user_id").Find(&votes).Error
	return votes, err
}

func (s *GormStore) ReplaceVote(ctx context.Context, v models.UsefulVote) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ? AND user_id = ?", v.ReviewID, v.UserID).
			Delete(&models.UsefulVote{}).Error; err != nil {
			return err
		}
		return tx.Create(&v).Error
	})
}

func (s *GormStore) DeleteVote(ctx context.Context, reviewID, userID int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).Delete(&models.UsefulVote{})
	return res.RowsAffected > 0, res.Error
}

func (s *GormStore) Review(ctx context.Context, id int64) (*models.Review, error) {
	var r models.Review
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *GormStore) Reviews(ctx context.Context, filmID *int64) ([]models.Review, error) {
	reviews := []models.Review{}
	q := s.db.WithContext(ctx).Model(&models.Review{})
	if filmID != nil {
		q = q.Where("film_id = ?", *filmID)
	}
	err := q.Order("id").Find(&reviews).Error
	return reviews, err
}

func (s *GormStore) CreateReview(ctx context.Context, r *models.Review) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *GormStore) UpdateReview(ctx context.Context, r *models.Review) error {
	res := s.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", r.ID).
		Updates(map[string]any{"is_positive": r.IsPositive, "content": r.Content})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteReview(ctx context.Context, id int64) (bool, error) {
	var removed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.UsefulVote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Review{}, id)
		removed = res.RowsAffected > 0
		return res.Error
	})
	return removed, err
}

// =============================================================================
// Events
// =============================================================================

func (s *GormStore) AppendEvent(ctx context.Context, e *models.Event) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *GormStore) EventsOf(ctx context.Context, userID int64) ([]models.Event, error) {
	events := []models.Event{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("timestamp DESC").Order("id DESC").Find(&events).Error
	return events, err
}

// translate maps gorm's miss to the package sentinel
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
