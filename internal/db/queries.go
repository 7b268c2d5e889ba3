package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/hoplol/hoplol/internal/bookmark"
	"github.com/hoplol/hoplol/internal/errors"
)

// CreateBookmark inserts a bookmark and its alias rows in one transaction.
// The whole command namespace (names ∪ aliases) is checked inside the
// transaction, so a name can never race an alias into the same string.
func CreateBookmark(db *sql.DB, b *bookmark.Bookmark, aliases []bookmark.Alias) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	if taken, err := commandExists(tx, b.Name, ""); err != nil {
		return err
	} else if taken {
		return errors.NewCommandTaken(b.Name)
	}

	_, err = tx.Exec(`
		INSERT INTO bookmarks (id, name, url, description, use_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.URL, toNullString(b.Description), b.UseCount, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewCommandTaken(b.Name)
		}
		return errors.NewInternal(err)
	}

	for _, a := range aliases {
		if taken, err := commandExists(tx, a.Alias, ""); err != nil {
			return err
		} else if taken {
			return errors.NewCommandTaken(a.Alias)
		}
		_, err = tx.Exec(`
			INSERT INTO aliases (id, alias, bookmark_id, created_at)
			VALUES (?, ?, ?, ?)
		`, a.ID, a.Alias, a.BookmarkID, a.CreatedAt)
		if err != nil {
			if isUniqueConstraintError(err) {
				return errors.NewCommandTaken(a.Alias)
			}
			return errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetByID retrieves a bookmark by its ULID, with aliases loaded.
func GetByID(db *sql.DB, id string) (*bookmark.Bookmark, error) {
	row := db.QueryRow(`
		SELECT id, name, url, description, use_count, created_at, updated_at
		FROM bookmarks
		WHERE id = ?
	`, id)

	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if b.Aliases, err = aliasStrings(db, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// FindByCommand resolves a normalized command string against the namespace.
// Bookmark names take precedence over aliases. A miss returns (nil, nil);
// it is not an error.
func FindByCommand(db *sql.DB, command string) (*bookmark.Bookmark, error) {
	row := db.QueryRow(`
		SELECT id, name, url, description, use_count, created_at, updated_at
		FROM bookmarks
		WHERE name = ?
	`, command)

	b, err := scanBookmark(row)
	if err == nil {
		return b, nil
	}
	if err != sql.ErrNoRows {
		return nil, errors.NewInternal(err)
	}

	// Fall back to the alias table
	row = db.QueryRow(`
		SELECT b.id, b.name, b.url, b.description, b.use_count, b.created_at, b.updated_at
		FROM aliases a
		JOIN bookmarks b ON b.id = a.bookmark_id
		WHERE a.alias = ?
	`, command)

	b, err = scanBookmark(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return b, nil
}

// ListBookmarks returns all bookmarks ordered by use_count (descending) then
// name, with aliases loaded.
func ListBookmarks(db *sql.DB) ([]bookmark.Bookmark, error) {
	rows, err := db.Query(`
		SELECT id, name, url, description, use_count, created_at, updated_at
		FROM bookmarks
		ORDER BY use_count DESC, name ASC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var bookmarks []bookmark.Bookmark
	for rows.Next() {
		b, err := scanBookmarkRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		bookmarks = append(bookmarks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Attach aliases in a single pass
	aliasesByBookmark, err := allAliasStrings(db)
	if err != nil {
		return nil, err
	}
	for i := range bookmarks {
		bookmarks[i].Aliases = aliasesByBookmark[bookmarks[i].ID]
	}

	return bookmarks, nil
}

// ListCommands returns every lookup string in the namespace (bookmark names
// followed by aliases, each block ordered by command) paired with its owning
// bookmark's projection. The fuzzy engine builds its snapshot from this.
func ListCommands(db *sql.DB) ([]bookmark.Command, error) {
	rows, err := db.Query(`
		SELECT name AS command, id, url, description, use_count
		FROM bookmarks
		UNION ALL
		SELECT a.alias AS command, b.id, b.url, b.description, b.use_count
		FROM aliases a
		JOIN bookmarks b ON b.id = a.bookmark_id
		ORDER BY command ASC
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var commands []bookmark.Command
	for rows.Next() {
		var (
			c    bookmark.Command
			desc sql.NullString
		)
		if err := rows.Scan(&c.Command, &c.BookmarkID, &c.URL, &desc, &c.UseCount); err != nil {
			return nil, errors.NewInternal(err)
		}
		c.Description = desc.String
		commands = append(commands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return commands, nil
}

// UpdateBookmark updates name, url, and description of an existing bookmark
// and bumps updated_at. If the name changes, the new name is checked against
// the namespace inside the same transaction.
func UpdateBookmark(db *sql.DB, id, name, url, description string) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	var current string
	if err := tx.QueryRow(`SELECT name FROM bookmarks WHERE id = ?`, id).Scan(&current); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFound(id)
		}
		return errors.NewInternal(err)
	}

	if name != current {
		if taken, err := commandExists(tx, name, id); err != nil {
			return err
		} else if taken {
			return errors.NewCommandTaken(name)
		}
	}

	now := time.Now().Unix()
	_, err = tx.Exec(`
		UPDATE bookmarks
		SET name = ?, url = ?, description = ?, updated_at = ?
		WHERE id = ?
	`, name, url, toNullString(description), now, id)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewCommandTaken(name)
		}
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteBookmark removes a bookmark and all its aliases in one transaction.
// Aliases never outlive their bookmark, so the child rows go first.
func DeleteBookmark(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM aliases WHERE bookmark_id = ?`, id); err != nil {
		return errors.NewInternal(err)
	}

	result, err := tx.Exec(`DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// AddAlias inserts an alias after checking the namespace inside a transaction.
// The owning bookmark must exist.
func AddAlias(db *sql.DB, a *bookmark.Alias) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(`SELECT 1 FROM bookmarks WHERE id = ?`, a.BookmarkID).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFound(a.BookmarkID)
		}
		return errors.NewInternal(err)
	}

	if taken, err := commandExists(tx, a.Alias, ""); err != nil {
		return err
	} else if taken {
		return errors.NewCommandTaken(a.Alias)
	}

	_, err = tx.Exec(`
		INSERT INTO aliases (id, alias, bookmark_id, created_at)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Alias, a.BookmarkID, a.CreatedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewCommandTaken(a.Alias)
		}
		return errors.NewInternal(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// FindAlias retrieves an alias row by its normalized string.
func FindAlias(db *sql.DB, alias string) (*bookmark.Alias, error) {
	var a bookmark.Alias
	err := db.QueryRow(`
		SELECT id, alias, bookmark_id, created_at
		FROM aliases
		WHERE alias = ?
	`, alias).Scan(&a.ID, &a.Alias, &a.BookmarkID, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(alias)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return &a, nil
}

// DeleteAlias removes a single alias by ID.
func DeleteAlias(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM aliases WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// GetAliases returns the alias rows for a bookmark, ordered by alias.
func GetAliases(db *sql.DB, bookmarkID string) ([]bookmark.Alias, error) {
	rows, err := db.Query(`
		SELECT id, alias, bookmark_id, created_at
		FROM aliases
		WHERE bookmark_id = ?
		ORDER BY alias ASC
	`, bookmarkID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var aliases []bookmark.Alias
	for rows.Next() {
		var a bookmark.Alias
		if err := rows.Scan(&a.ID, &a.Alias, &a.BookmarkID, &a.CreatedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		aliases = append(aliases, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return aliases, nil
}

// IncrementUseCount adds exactly 1 to a bookmark's use_count. The single
// UPDATE is atomic under SQLite's locking, so N concurrent hits always add N.
// updated_at is left alone: it tracks content edits, not usage.
func IncrementUseCount(db *sql.DB, id string) error {
	result, err := db.Exec(`
		UPDATE bookmarks
		SET use_count = use_count + 1
		WHERE id = ?
	`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// CommandExists reports whether a normalized string is taken anywhere in the
// namespace (bookmark name or alias).
func CommandExists(db *sql.DB, command string) (bool, error) {
	return commandExists(db, command, "")
}

// CountBookmarks returns the number of stored bookmarks. Used to decide
// whether to seed on first run.
func CountBookmarks(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM bookmarks`).Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// commandExists checks the full namespace for a taken string. When
// excludeBookmarkID is non-empty, that bookmark's own name doesn't count
// (used when renaming).
func commandExists(q querier, command, excludeBookmarkID string) (bool, error) {
	var exists int
	err := q.QueryRow(`
		SELECT 1 FROM bookmarks WHERE name = ? AND id != ?
		UNION ALL
		SELECT 1 FROM aliases WHERE alias = ?
		LIMIT 1
	`, command, excludeBookmarkID, command).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBookmark scans a single row into a Bookmark struct (aliases not loaded).
func scanBookmark(row *sql.Row) (*bookmark.Bookmark, error) {
	return scanBookmarkFrom(row)
}

// scanBookmarkRows scans the current *sql.Rows row into a Bookmark.
func scanBookmarkRows(rows *sql.Rows) (*bookmark.Bookmark, error) {
	return scanBookmarkFrom(rows)
}

func scanBookmarkFrom(s scanner) (*bookmark.Bookmark, error) {
	var (
		b    bookmark.Bookmark
		desc sql.NullString
	)
	err := s.Scan(&b.ID, &b.Name, &b.URL, &desc, &b.UseCount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Description = desc.String
	return &b, nil
}

// aliasStrings returns the alias strings for one bookmark, ordered by alias.
func aliasStrings(db *sql.DB, bookmarkID string) ([]string, error) {
	aliases, err := GetAliases(db, bookmarkID)
	if err != nil {
		return nil, err
	}
	if len(aliases) == 0 {
		return nil, nil
	}
	strs := make([]string, len(aliases))
	for i, a := range aliases {
		strs[i] = a.Alias
	}
	return strs, nil
}

// allAliasStrings maps bookmark ID to its alias strings across the whole table.
func allAliasStrings(db *sql.DB) (map[string][]string, error) {
	rows, err := db.Query(`SELECT bookmark_id, alias FROM aliases ORDER BY alias ASC`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	byBookmark := make(map[string][]string)
	for rows.Next() {
		var bookmarkID, alias string
		if err := rows.Scan(&bookmarkID, &alias); err != nil {
			return nil, errors.NewInternal(err)
		}
		byBookmark[bookmarkID] = append(byBookmark[bookmarkID], alias)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return byBookmark, nil
}

// toNullString converts an optional string to sql.NullString.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
