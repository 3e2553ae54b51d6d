package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"reviewhub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "import.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.SetupJoinTable(&models.Title{}, "Genres", &models.GenreTitle{}))
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.GenreTitle{},
		&models.Review{},
		&models.Comment{},
	))
	return db
}

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func fixtureSet() map[string]string {
	return map[string]string{
		"users.csv": "id,username,email,role,bio,first_name,last_name\n" +
			"1,alice,alice@example.com,user,,Alice,Smith\n" +
			"2,bob,bob@example.com,moderator,,Bob,Jones\n",
		"category.csv": "id,name,slug\n1,Movies,movie\n",
		"genre.csv":    "id,name,slug\n1,Drama,drama\n2,Comedy,comedy\n",
		"titles.csv":   "id,name,year,category\n1,Example,1999,1\n",
		"genre_title.csv": "id,title_id,genre_id\n" +
			"1,1,1\n" +
			"2,1,2\n",
		"review.csv": "id,title_id,text,author,score,pub_date\n" +
			"1,1,liked it,1,8,2019-09-24T21:08:21Z\n",
		"comments.csv": "id,review_id,text,author,pub_date\n" +
			"1,1,same here,2,2019-09-25T10:00:00Z\n",
	}
}

func newTestImporter(db *gorm.DB) *Importer {
	return New(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoad_FullFixtureSet(t *testing.T) {
	db := newTestDB(t)
	dir := writeFixtures(t, fixtureSet())

	require.NoError(t, newTestImporter(db).Load(context.Background(), dir))

	// Fixture user ids are integers; accounts come out uuid-keyed with
	// review/comment authorship resolved through the mapping.
	var alice, bob models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&alice).Error)
	require.NoError(t, db.Where("username = ?", "bob").First(&bob).Error)
	assert.NotEqual(t, "1", alice.ID)
	assert.Equal(t, models.RoleModerator, bob.Role)

	var title models.Title
	require.NoError(t, db.Preload("Genres").First(&title, 1).Error)
	assert.Equal(t, "Example", title.Name)
	if assert.NotNil(t, title.CategoryID) {
		assert.EqualValues(t, 1, *title.CategoryID)
	}
	assert.Len(t, title.Genres, 2)

	var review models.Review
	require.NoError(t, db.First(&review, 1).Error)
	assert.Equal(t, alice.ID, review.AuthorID)
	assert.Equal(t, 8, review.Score)
	assert.Equal(t, 2019, review.CreatedAt.Year())

	var comment models.Comment
	require.NoError(t, db.First(&comment, 1).Error)
	assert.EqualValues(t, 1, comment.ReviewID)
}

func TestLoad_Idempotent(t *testing.T) {
	db := newTestDB(t)
	dir := writeFixtures(t, fixtureSet())
	im := newTestImporter(db)

	require.NoError(t, im.Load(context.Background(), dir))
	require.NoError(t, im.Load(context.Background(), dir))

	counts := map[string]any{
		"users":        &models.User{},
		"categories":   &models.Category{},
		"genres":       &models.Genre{},
		"titles":       &models.Title{},
		"genre_titles": &models.GenreTitle{},
		"reviews":      &models.Review{},
		"comments":     &models.Comment{},
	}
	expected := map[string]int64{
		"users": 2, "categories": 1, "genres": 2, "titles": 1,
		"genre_titles": 2, "reviews": 1, "comments": 1,
	}
	for table, model := range counts {
		var n int64
		assert.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, expected[table], n, "table %s", table)
	}
}

func TestLoad_SkipsMissingFiles(t *testing.T) {
	db := newTestDB(t)
	fixtures := fixtureSet()
	delete(fixtures, "review.csv")
	delete(fixtures, "comments.csv")
	dir := writeFixtures(t, fixtures)

	require.NoError(t, newTestImporter(db).Load(context.Background(), dir))

	var titleCount, reviewCount int64
	assert.NoError(t, db.Model(&models.Title{}).Count(&titleCount).Error)
	assert.NoError(t, db.Model(&models.Review{}).Count(&reviewCount).Error)
	assert.EqualValues(t, 1, titleCount)
	assert.Zero(t, reviewCount)
}

func TestLoad_UnknownAuthorFails(t *testing.T) {
	db := newTestDB(t)
	fixtures := fixtureSet()
	fixtures["review.csv"] = "id,title_id,text,author,score,pub_date\n" +
		"1,1,liked it,99,8,2019-09-24T21:08:21Z\n"
	dir := writeFixtures(t, fixtures)

	err := newTestImporter(db).Load(context.Background(), dir)
	assert.ErrorContains(t, err, "unknown author")
}
