package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lunamoth/resona/internal/structures"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDatabase is the SQLite-backed library store.
type SQLiteDatabase struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the library database.
func OpenSQLite(path string) (*SQLiteDatabase, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	sqliteDB := &SQLiteDatabase{
		db:   db,
		path: path,
	}

	if err := sqliteDB.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sqliteDB, nil
}

func (db *SQLiteDatabase) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS liked_songs (
			video_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artists TEXT NOT NULL, -- JSON array
			album TEXT,            -- JSON object
			thumbnail TEXT,
			duration REAL,
			like_status TEXT NOT NULL,
			rated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_liked_songs_rated_at ON liked_songs(rated_at)`,

		`CREATE TABLE IF NOT EXISTS library_playlists (
			playlist_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			thumbnail TEXT,
			author TEXT,
			track_count INTEGER,
			synced_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		if _, err := db.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %q: %w", query[:30], err)
		}
	}

	return nil
}

// Close closes the database.
func (db *SQLiteDatabase) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.db.Close()
}

// UpsertLikedSong records or updates a track rating.
func (db *SQLiteDatabase) UpsertLikedSong(song structures.Song, status structures.LikeStatus) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	artists, err := json.Marshal(song.Artists)
	if err != nil {
		return fmt.Errorf("failed to encode artists: %w", err)
	}

	var album []byte
	if song.Album != nil {
		album, err = json.Marshal(song.Album)
		if err != nil {
			return fmt.Errorf("failed to encode album: %w", err)
		}
	}

	var duration sql.NullFloat64
	if song.Duration != nil {
		duration = sql.NullFloat64{Float64: *song.Duration, Valid: true}
	}

	_, err = db.db.Exec(`
		INSERT INTO liked_songs (video_id, title, artists, album, thumbnail, duration, like_status, rated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(video_id) DO UPDATE SET
			title = excluded.title,
			artists = excluded.artists,
			album = excluded.album,
			thumbnail = excluded.thumbnail,
			duration = excluded.duration,
			like_status = excluded.like_status,
			rated_at = CURRENT_TIMESTAMP`,
		song.VideoID, song.Title, string(artists), nullableString(album),
		song.Thumbnail, duration, status.String())
	if err != nil {
		return fmt.Errorf("failed to upsert liked song: %w", err)
	}

	return nil
}

// RemoveLikedSong deletes a track rating record.
func (db *SQLiteDatabase) RemoveLikedSong(videoID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.db.Exec(`DELETE FROM liked_songs WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("failed to remove liked song: %w", err)
	}

	return nil
}

// LikedSongs returns all recorded ratings, most recent first.
func (db *SQLiteDatabase) LikedSongs() ([]LikedSongRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.db.Query(`
		SELECT video_id, title, artists, album, thumbnail, duration, like_status, rated_at
		FROM liked_songs ORDER BY rated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query liked songs: %w", err)
	}
	defer rows.Close()

	var records []LikedSongRecord

	for rows.Next() {
		var (
			record    LikedSongRecord
			artists   string
			album     sql.NullString
			duration  sql.NullFloat64
			status    string
			thumbnail sql.NullString
			ratedAt   time.Time
		)

		if err := rows.Scan(&record.Song.VideoID, &record.Song.Title, &artists,
			&album, &thumbnail, &duration, &status, &ratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan liked song: %w", err)
		}

		record.Song.ID = record.Song.VideoID
		record.Song.Thumbnail = thumbnail.String
		record.Status = structures.ParseLikeStatus(status)
		record.RatedAt = ratedAt

		if err := json.Unmarshal([]byte(artists), &record.Song.Artists); err != nil {
			return nil, fmt.Errorf("failed to decode artists: %w", err)
		}

		if album.Valid && album.String != "" {
			record.Song.Album = &structures.Album{}
			if err := json.Unmarshal([]byte(album.String), record.Song.Album); err != nil {
				return nil, fmt.Errorf("failed to decode album: %w", err)
			}
		}

		if duration.Valid {
			record.Song.Duration = &duration.Float64
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// ReplacePlaylists replaces the stored library playlist snapshot.
func (db *SQLiteDatabase) ReplacePlaylists(playlists []structures.Playlist) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM library_playlists`); err != nil {
		return fmt.Errorf("failed to clear playlists: %w", err)
	}

	for _, p := range playlists {
		var trackCount sql.NullInt64
		if p.TrackCount != nil {
			trackCount = sql.NullInt64{Int64: int64(*p.TrackCount), Valid: true}
		}

		if _, err := tx.Exec(`
			INSERT INTO library_playlists (playlist_id, title, description, thumbnail, author, track_count, synced_at)
			VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			p.ID, p.Title, p.Description, p.Thumbnail, p.Author, trackCount); err != nil {
			return fmt.Errorf("failed to insert playlist: %w", err)
		}
	}

	return tx.Commit()
}

// Playlists returns the stored library playlist snapshot.
func (db *SQLiteDatabase) Playlists() ([]PlaylistRecord, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.db.Query(`
		SELECT playlist_id, title, description, thumbnail, author, track_count, synced_at
		FROM library_playlists ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var records []PlaylistRecord

	for rows.Next() {
		var (
			record      PlaylistRecord
			description sql.NullString
			thumbnail   sql.NullString
			author      sql.NullString
			trackCount  sql.NullInt64
		)

		if err := rows.Scan(&record.Playlist.ID, &record.Playlist.Title, &description,
			&thumbnail, &author, &trackCount, &record.SyncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}

		record.Playlist.Description = description.String
		record.Playlist.Thumbnail = thumbnail.String
		record.Playlist.Author = author.String

		if trackCount.Valid {
			n := int(trackCount.Int64)
			record.Playlist.TrackCount = &n
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// SaveAppState stores an opaque key/value pair.
func (db *SQLiteDatabase) SaveAppState(key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.db.Exec(`
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to save app state: %w", err)
	}

	return nil
}

// GetAppState looks up an opaque key/value pair.
func (db *SQLiteDatabase) GetAppState(key string) (string, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var value string

	err := db.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}

	return value, true
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}

	return string(b)
}
