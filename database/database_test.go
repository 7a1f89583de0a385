package database

import (
	"os"
	"path/filepath"
	"testing"

	"film-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sampleCatalog = `{
  "directors": [{"id": 1, "name": "Christopher Nolan"}],
  "films": [
    {"id": 1, "name": "Memento", "releaseDate": "2000-09-05T00:00:00Z", "duration": 113,
     "mpa": {"id": 4}, "genres": [{"id": 4, "name": "Thriller"}], "directors": [{"id": 1, "name": "Christopher Nolan"}]},
    {"id": 2, "name": "Up", "releaseDate": "2009-05-29T00:00:00Z", "duration": 96, "mpa": {"id": 2},
     "genres": [{"id": 3, "name": "Animation"}]}
  ],
  "users": [
    {"id": 1, "email": "a@example.com", "login": "a"},
    {"id": 2, "email": "b@example.com", "login": "b"}
  ],
  "likes": [{"filmId": 1, "userId": 1}, {"filmId": 1, "userId": 2}],
  "friendships": [{"userId": 1, "friendId": 2}]
}`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, SeedReference(db))
	return db
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))
	return path
}

func TestSeedReference_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedReference(db))

	var genres, mpas int64
	db.Model(&models.Genre{}).Count(&genres)
	db.Model(&models.Mpa{}).Count(&mpas)
	assert.Equal(t, int64(len(defaultGenres)), genres)
	assert.Equal(t, int64(len(defaultMpas)), mpas)
}

func TestLoadCatalog(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, LoadCatalog(db, writeCatalog(t)))

	var memento models.Film
	require.NoError(t, db.Preload("Genres").Preload("Directors").Preload("Mpa").First(&memento, 1).Error)
	assert.Equal(t, "Memento", memento.Name)
	assert.Equal(t, 2, memento.Rate, "rate is derived from the loaded likes")
	assert.Equal(t, "R", memento.Mpa.Name)
	require.Len(t, memento.Directors, 1)
	assert.Equal(t, "Christopher Nolan", memento.Directors[0].Name)

	var friendships int64
	db.Model(&models.Friendship{}).Count(&friendships)
	assert.Equal(t, int64(1), friendships)
}

func TestLoadCatalog_SkipsWhenFilmsExist(t *testing.T) {
	db := openTestDB(t)
	path := writeCatalog(t)
	require.NoError(t, LoadCatalog(db, path))
	require.NoError(t, LoadCatalog(db, path))

	var films int64
	db.Model(&models.Film{}).Count(&films)
	assert.Equal(t, int64(2), films)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	db := openTestDB(t)
	assert.Error(t, LoadCatalog(db, filepath.Join(t.TempDir(), "absent.json")))
}
