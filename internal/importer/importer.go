// Package importer bulk-loads fixture data from fixed-schema CSV
// files, one file per entity type. Rows are upserted by natural key, so
// re-running a load is a no-op for records that already exist.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// File names follow the fixture layout the loader was built for.
const (
	usersFile      = "users.csv"
	categoryFile   = "category.csv"
	genreFile      = "genre.csv"
	titlesFile     = "titles.csv"
	genreTitleFile = "genre_title.csv"
	reviewFile     = "review.csv"
	commentsFile   = "comments.csv"
)

type Importer struct {
	db     *gorm.DB
	logger *slog.Logger

	// CSV user ids are integers while the users table is uuid-keyed, so
	// each run maps fixture ids onto the created accounts.
	userIDs map[string]string
}

func New(db *gorm.DB, logger *slog.Logger) *Importer {
	return &Importer{
		db:      db,
		logger:  logger,
		userIDs: make(map[string]string),
	}
}

// Load imports every entity file found in dir, parents before children.
// Missing files are skipped so partial fixture sets load cleanly.
func (im *Importer) Load(ctx context.Context, dir string) error {
	steps := []struct {
		file string
		fn   func(ctx context.Context, t *table) error
	}{
		{usersFile, im.loadUsers},
		{categoryFile, im.loadCategories},
		{genreFile, im.loadGenres},
		{titlesFile, im.loadTitles},
		{genreTitleFile, im.loadGenreTitles},
		{reviewFile, im.loadReviews},
		{commentsFile, im.loadComments},
	}

	for _, step := range steps {
		path := filepath.Join(dir, step.file)
		t, err := readTable(path)
		if err != nil {
			if os.IsNotExist(err) {
				im.logger.Warn("fixture file missing, skipping", "file", step.file)
				continue
			}
			return fmt.Errorf("read %s: %w", step.file, err)
		}
		if err := step.fn(ctx, t); err != nil {
			return fmt.Errorf("load %s: %w", step.file, err)
		}
		im.logger.Info("fixture file loaded", "file", step.file, "rows", len(t.rows))
	}
	return im.syncSequences(ctx)
}

// Tables whose rows were inserted with explicit autoincrement ids.
var sequencedTables = []string{
	"categories", "genres", "titles", "genre_titles", "reviews", "comments",
}

// syncSequences advances each id sequence past the highest imported id.
// Inserting with explicit primary keys leaves Postgres sequences behind,
// and the next API-side create would collide with an imported row.
func (im *Importer) syncSequences(ctx context.Context) error {
	if im.db.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range sequencedTables {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 1)) FROM %s",
			table, table)
		if err := im.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("sync %s id sequence: %w", table, err)
		}
	}
	return nil
}

func (im *Importer) loadUsers(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		username := row.get("username")

		var user models.User
		err := im.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				Username:  username,
				Email:     row.get("email"),
				Role:      models.Role(row.get("role")),
				Bio:       row.get("bio"),
				FirstName: row.get("first_name"),
				LastName:  row.get("last_name"),
			}
			err = im.db.WithContext(ctx).Create(&user).Error
		}
		if err != nil {
			return err
		}

		im.userIDs[row.get("id")] = user.ID
		return nil
	})
}

func (im *Importer) loadCategories(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		id, err := row.getInt("id")
		if err != nil {
			return err
		}
		category := models.Category{ID: id, Name: row.get("name"), Slug: row.get("slug")}
		return im.getOrCreate(ctx, &models.Category{}, "slug = ?", []any{category.Slug}, &category)
	})
}

func (im *Importer) loadGenres(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		id, err := row.getInt("id")
		if err != nil {
			return err
		}
		genre := models.Genre{ID: id, Name: row.get("name"), Slug: row.get("slug")}
		return im.getOrCreate(ctx, &models.Genre{}, "slug = ?", []any{genre.Slug}, &genre)
	})
}

func (im *Importer) loadTitles(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		id, err := row.getInt("id")
		if err != nil {
			return err
		}
		year, err := row.getInt("year")
		if err != nil {
			return err
		}

		title := models.Title{ID: id, Name: row.get("name"), Year: int(year)}
		if categoryID := row.get("category"); categoryID != "" {
			cid, err := strconv.ParseInt(categoryID, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", categoryID, err)
			}
			title.CategoryID = &cid
		}
		return im.getOrCreate(ctx, &models.Title{}, "id = ?", []any{id}, &title)
	})
}

func (im *Importer) loadGenreTitles(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		id, err := row.getInt("id")
		if err != nil {
			return err
		}
		titleID, err := row.getInt("title_id")
		if err != nil {
			return err
		}
		genreID, err := row.getInt("genre_id")
		if err != nil {
			return err
		}

		gt := models.GenreTitle{ID: id, TitleID: titleID, GenreID: genreID}
		return im.getOrCreate(ctx, &models.GenreTitle{},
			"title_id = ? AND genre_id = ?", []any{titleID, genreID}, &gt)
	})
}

func (im *Importer) loadReviews(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		id, err := row.getInt("id")
		if err != nil {
			return err
		}
		titleID, err := row.getInt("title_id")
		if err != nil {
			return err
		}
		score, err := row.getInt("score")
		if err != nil {
			return err
		}
		authorID, err := im.resolveAuthor(row.get("author"))
		if err != nil {
			return err
		}

		review := models.Review{
			ID:       id,
			Text:     row.get("text"),
			Score:    int(score),
			TitleID:  titleID,
			AuthorID: authorID,
		}
		if pubDate, ok := row.getTime("pub_date"); ok {
			review.CreatedAt = pubDate
		}
		return im.getOrCreate(ctx, &models.Review{},
			"title_id = ? AND author_id = ?", []any{titleID, authorID}, &review)
	})
}

func (im *Importer) loadComments(ctx context.Context, t *table) error {
	return t.each(func(row record) error {
		id, err := row.getInt("id")
		if err != nil {
			return err
		}
		reviewID, err := row.getInt("review_id")
		if err != nil {
			return err
		}
		authorID, err := im.resolveAuthor(row.get("author"))
		if err != nil {
			return err
		}

		comment := models.Comment{
			ID:       id,
			Text:     row.get("text"),
			ReviewID: reviewID,
			AuthorID: authorID,
		}
		if pubDate, ok := row.getTime("pub_date"); ok {
			comment.CreatedAt = pubDate
		}
		return im.getOrCreate(ctx, &models.Comment{}, "id = ?", []any{id}, &comment)
	})
}

func (im *Importer) resolveAuthor(csvID string) (string, error) {
	authorID, ok := im.userIDs[csvID]
	if !ok {
		return "", fmt.Errorf("unknown author id %q (users.csv must load first)", csvID)
	}
	return authorID, nil
}

// getOrCreate inserts value unless a row already matches the natural
// key condition.
func (im *Importer) getOrCreate(ctx context.Context, model any, cond string, args []any, value any) error {
	err := im.db.WithContext(ctx).Model(model).Where(cond, args...).First(model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return im.db.WithContext(ctx).Create(value).Error
	}
	return err
}
