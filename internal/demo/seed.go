package demo

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/database"
	"github.com/mrlokans/locallibrary/internal/database/authors"
	"github.com/mrlokans/locallibrary/internal/database/books"
	"github.com/mrlokans/locallibrary/internal/database/instances"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Reset wipes the catalog and re-seeds it with the sample data. User
// accounts survive a reset so demo logins keep working.
func Reset(db *database.Database) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		tables := []string{
			"book_genres",
			"book_instances",
			"books",
			"authors",
			"genres",
			"languages",
			"admin_log",
		}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return Seed(db)
}

// Seed populates an empty catalog with a handful of public domain books,
// their authors and a few loanable copies in assorted states.
func Seed(db *database.Database) error {
	languages := make(map[string]*entities.Language)
	for _, name := range []string{"English", "French", "Spanish"} {
		language, err := db.CreateLanguage(name)
		if err != nil {
			return fmt.Errorf("create language %s: %w", name, err)
		}
		languages[name] = language
	}

	genres := make(map[string]*entities.Genre)
	for _, name := range []string{"Science Fiction", "Classic", "Gothic", "Adventure"} {
		genre, err := db.CreateGenre(name)
		if err != nil {
			return fmt.Errorf("create genre %s: %w", name, err)
		}
		genres[name] = genre
	}

	authorConfigs := []struct {
		first, last  string
		birth, death string
	}{
		{"Jane", "Austen", "1775-12-16", "1817-07-18"},
		{"Jules", "Verne", "1828-02-08", "1905-03-24"},
		{"Mary", "Shelley", "1797-08-30", "1851-02-01"},
		{"Herbert George", "Wells", "1866-09-21", "1946-08-13"},
	}

	authorRepo := authors.NewRepository(db.DB)
	byLastName := make(map[string]*entities.Author)
	for _, cfg := range authorConfigs {
		author := &entities.Author{
			FirstName:   cfg.first,
			LastName:    cfg.last,
			DateOfBirth: parseDate(cfg.birth),
			DateOfDeath: parseDate(cfg.death),
		}
		if err := authorRepo.Create(author); err != nil {
			return fmt.Errorf("create author %s: %w", cfg.last, err)
		}
		byLastName[cfg.last] = author
	}

	bookConfigs := []struct {
		title    string
		author   string
		summary  string
		isbn     string
		language string
		genres   []string
		copies   []copyConfig
	}{
		{
			title:    "Pride and Prejudice",
			author:   "Austen",
			summary:  "Elizabeth Bennet navigates manners, upbringing and marriage in Regency England.",
			isbn:     "9780141439518",
			language: "English",
			genres:   []string{"Classic"},
			copies: []copyConfig{
				{imprint: "Penguin Classics, 2002", status: entities.StatusAvailable},
				{imprint: "Penguin Classics, 2002", status: entities.StatusOnLoan, dueBack: "2026-01-15"},
			},
		},
		{
			title:    "Twenty Thousand Leagues Under the Seas",
			author:   "Verne",
			summary:  "Professor Aronnax joins Captain Nemo aboard the submarine Nautilus.",
			isbn:     "9780199539277",
			language: "French",
			genres:   []string{"Science Fiction", "Adventure", "Classic"},
			copies: []copyConfig{
				{imprint: "Oxford World's Classics, 2009", status: entities.StatusAvailable},
				{imprint: "Oxford World's Classics, 2009", status: entities.StatusMaintenance},
			},
		},
		{
			title:    "Frankenstein; or, The Modern Prometheus",
			author:   "Shelley",
			summary:  "Victor Frankenstein creates a sapient creature and abandons it.",
			isbn:     "9780486282114",
			language: "English",
			genres:   []string{"Gothic", "Science Fiction", "Classic"},
			copies: []copyConfig{
				{imprint: "Dover Thrift Editions, 1994", status: entities.StatusReserved},
			},
		},
		{
			title:    "The War of the Worlds",
			author:   "Wells",
			summary:  "Martian invaders land in Surrey and march on London.",
			isbn:     "9780141441030",
			language: "English",
			genres:   []string{"Science Fiction"},
			copies: []copyConfig{
				{imprint: "Penguin Classics, 2005", status: entities.StatusAvailable},
				{imprint: "Penguin Classics, 2005", status: entities.StatusOnLoan, dueBack: "2025-11-02"},
				{imprint: "Heinemann, 1898 facsimile", status: entities.StatusMaintenance},
			},
		},
	}

	bookRepo := books.NewRepository(db.DB)
	instanceRepo := instances.NewRepository(db.DB)
	for _, cfg := range bookConfigs {
		author := byLastName[cfg.author]
		language := languages[cfg.language]

		book := &entities.Book{
			Title:      cfg.title,
			AuthorID:   &author.ID,
			Summary:    cfg.summary,
			ISBN:       cfg.isbn,
			LanguageID: &language.ID,
		}
		for _, name := range cfg.genres {
			book.Genres = append(book.Genres, *genres[name])
		}
		if err := bookRepo.Create(book); err != nil {
			return fmt.Errorf("create book %s: %w", cfg.title, err)
		}

		for _, copyCfg := range cfg.copies {
			instance := &entities.BookInstance{
				BookID:  book.ID,
				Imprint: copyCfg.imprint,
				Status:  copyCfg.status,
				DueBack: parseDate(copyCfg.dueBack),
			}
			if err := instanceRepo.Create(instance); err != nil {
				return fmt.Errorf("create copy of %s: %w", cfg.title, err)
			}
		}
	}

	return nil
}

type copyConfig struct {
	imprint string
	status  entities.LoanStatus
	dueBack string
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
