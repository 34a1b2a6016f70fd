package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Genre{},
		&entities.Language{},
		&entities.Author{},
		&entities.Book{},
		&entities.BookInstance{},
		&entities.AuditEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Genres ---

func (d *Database) CreateGenre(name string) (*entities.Genre, error) {
	genre := &entities.Genre{Name: name}
	if err := d.DB.Create(genre).Error; err != nil {
		return nil, err
	}
	return genre, nil
}

func (d *Database) GetGenreByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := d.DB.First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (d *Database) GetAllGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := d.DB.Order("name ASC").Find(&genres).Error
	return genres, err
}

func (d *Database) UpdateGenre(genre *entities.Genre) error {
	return d.DB.Save(genre).Error
}

// DeleteGenre removes a genre and its book associations in one
// transaction. Books that referenced the genre are kept.
func (d *Database) DeleteGenre(id uint) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_genres WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Genre{}, id).Error
	})
}

// --- Languages ---

func (d *Database) CreateLanguage(name string) (*entities.Language, error) {
	language := &entities.Language{Name: name}
	if err := d.DB.Create(language).Error; err != nil {
		return nil, err
	}
	return language, nil
}

func (d *Database) GetLanguageByID(id uint) (*entities.Language, error) {
	var language entities.Language
	if err := d.DB.First(&language, id).Error; err != nil {
		return nil, err
	}
	return &language, nil
}

func (d *Database) GetAllLanguages() ([]entities.Language, error) {
	var languages []entities.Language
	err := d.DB.Order("name ASC").Find(&languages).Error
	return languages, err
}

func (d *Database) UpdateLanguage(language *entities.Language) error {
	return d.DB.Save(language).Error
}

// DeleteLanguage removes a language and clears the language reference
// on any books that used it, in one transaction.
func (d *Database) DeleteLanguage(id uint) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Book{}).Where("language_id = ?", id).
			Update("language_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Language{}, id).Error
	})
}

// --- Users ---

func (d *Database) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	if err := d.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	if err := d.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) GetAllUsers() ([]entities.User, error) {
	var users []entities.User
	err := d.DB.Order("username ASC").Find(&users).Error
	return users, err
}

// DeleteUser removes a user account and clears the borrower reference
// on any copies loaned to them, in one transaction. The copies keep
// their status and due date.
func (d *Database) DeleteUser(id uint) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.BookInstance{}).Where("borrower_id = ?", id).
			Update("borrower_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.User{}, id).Error
	})
}
