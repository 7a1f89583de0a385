package database

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"film-backend/config"
	"film-backend/logging"
	"film-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Reference tags every database starts with
var (
	defaultGenres = []models.Genre{
		{ID: 1, Name: "Comedy"},
		{ID: 2, Name: "Drama"},
		{ID: 3, Name: "Animation"},
		{ID: 4, Name: "Thriller"},
		{ID: 5, Name: "Documentary"},
		{ID: 6, Name: "Action"},
	}
	defaultMpas = []models.Mpa{
		{ID: 1, Name: "G"},
		{ID: 2, Name: "PG"},
		{ID: 3, Name: "PG-13"},
		{ID: 4, Name: "R"},
		{ID: 5, Name: "NC-17"},
	}
)

// Models lists every record type managed by AutoMigrate
func Models() []any {
	return []any{
		&models.Mpa{},
		&models.Genre{},
		&models.Director{},
		&models.Film{},
		&models.User{},
		&models.Like{},
		&models.Friendship{},
		&models.Review{},
		&models.UsefulVote{},
		&models.Event{},
	}
}

// Open connects to the sqlite database at path and migrates the schema.
// In-memory databases are pinned to one connection so every query sees the
// same data.
func Open(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if strings.Contains(path, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// InitDB initializes the database connection and reference data
func InitDB(cfg *config.Config) error {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}

	var err error
	DB, err = Open(cfg.DatabasePath, level)
	if err != nil {
		return err
	}
	if err := SeedReference(DB); err != nil {
		return err
	}

	logging.Info().Str("path", cfg.DatabasePath).Msg("Database initialized successfully")
	return nil
}

// SeedReference inserts the fixed genre and rating tags. Existing rows are
// left untouched.
func SeedReference(db *gorm.DB) error {
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaultGenres).Error; err != nil {
		return fmt.Errorf("failed to seed genres: %w", err)
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaultMpas).Error; err != nil {
		return fmt.Errorf("failed to seed mpa ratings: %w", err)
	}
	return nil
}

// Catalog is the layout of the seed file
type Catalog struct {
	Directors   []models.Director   `json:"directors"`
	Films       []models.Film       `json:"films"`
	Users       []models.User       `json:"users"`
	Likes       []models.Like       `json:"likes"`
	Friendships []models.Friendship `json:"friendships"`
}

// LoadCatalog loads films, users and their relations from a JSON file. It is
// a no-op when the database already holds films.
func LoadCatalog(db *gorm.DB, filePath string) error {
	var count int64
	if err := db.Model(&models.Film{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logging.Info().Int64("films", count).Msg("Database already contains films, skipping catalogue load")
		return nil
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read catalogue file: %w", err)
	}

	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return fmt.Errorf("failed to parse catalogue: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := insertAll(tx, cat.Directors, "directors"); err != nil {
			return err
		}
		for i := range cat.Films {
			// Mpa comes in as a nested tag; only its id is authoritative.
			if cat.Films[i].MpaID == 0 {
				cat.Films[i].MpaID = cat.Films[i].Mpa.ID
			}
			cat.Films[i].Rate = 0
		}
		if err := insertAll(tx.Omit("Mpa"), cat.Films, "films"); err != nil {
			return err
		}
		if err := insertAll(tx, cat.Users, "users"); err != nil {
			return err
		}
		if err := insertAll(tx, cat.Likes, "likes"); err != nil {
			return err
		}
		if err := insertAll(tx, cat.Friendships, "friendships"); err != nil {
			return err
		}
		return tx.Exec("UPDATE films SET rate = (SELECT COUNT(*) FROM likes WHERE likes.film_id = films.id)").Error
	})
	if err != nil {
		return err
	}

	logging.Info().
		Int("films", len(cat.Films)).
		Int("users", len(cat.Users)).
		Int("likes", len(cat.Likes)).
		Msg("Catalogue load complete")
	return nil
}

func insertAll[T any](tx *gorm.DB, rows []T, name string) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
		return fmt.Errorf("insert %s: %w", name, err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
