package database

import (
	"time"

	"github.com/lunamoth/resona/internal/structures"
)

// LikedSongRecord is a locally recorded track rating.
type LikedSongRecord struct {
	Song    structures.Song
	Status  structures.LikeStatus
	RatedAt time.Time
}

// PlaylistRecord is a library playlist as last seen from the server.
type PlaylistRecord struct {
	Playlist structures.Playlist
	SyncedAt time.Time
}

// DB persists the user's library between sessions so the shell can render
// something before the first fetch and reconcile after mutations.
type DB interface {
	UpsertLikedSong(song structures.Song, status structures.LikeStatus) error
	RemoveLikedSong(videoID string) error
	LikedSongs() ([]LikedSongRecord, error)
	ReplacePlaylists(playlists []structures.Playlist) error
	Playlists() ([]PlaylistRecord, error)
	SaveAppState(key, value string) error
	GetAppState(key string) (string, bool)
	Close() error
}
