package systems

import (
	"context"

	"github.com/lunamoth/resona/internal/api"
	"github.com/lunamoth/resona/internal/auth"
	"github.com/lunamoth/resona/internal/database"
	"github.com/lunamoth/resona/internal/logger"
	"github.com/lunamoth/resona/internal/player"
	"github.com/lunamoth/resona/internal/structures"
)

// Systems is the composition root: one credential provider, one client, one
// library store and one playback bridge per process, explicitly constructed
// and injected rather than reached through globals.
type Systems struct {
	Config      *structures.Config
	Credentials *auth.FileProvider
	Client      *api.Client
	Database    database.DB
	Player      *player.Bridge
}

// New wires the subsystems together.
func New(cfg *structures.Config, db database.DB) *Systems {
	creds := auth.NewFileProvider(cfg.HeaderFile)

	return &Systems{
		Config:      cfg,
		Credentials: creds,
		Client:      api.NewClient(creds, cfg),
		Database:    db,
		Player:      player.NewBridge(),
	}
}

// Start waits for credentials to become available. A missing header file is
// not fatal: the client keeps working in anonymous mode for the endpoints
// that allow it.
func (s *Systems) Start(ctx context.Context) error {
	if err := s.Credentials.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger.Warn("starting without credentials: %v", err)
	}

	return nil
}

// Stop releases held resources.
func (s *Systems) Stop() error {
	if s.Database != nil {
		return s.Database.Close()
	}

	return nil
}

// Like rates a track thumbs-up and records the rating locally so the
// library view stays right even before the next server sync.
func (s *Systems) Like(ctx context.Context, song structures.Song) error {
	if err := s.Client.Like(ctx, song.VideoID); err != nil {
		return err
	}

	if s.Database != nil {
		if err := s.Database.UpsertLikedSong(song, structures.LikeStatusLike); err != nil {
			logger.Error("failed to record like locally: %v", err)
		}
	}

	return nil
}

// Dislike rates a track thumbs-down and updates the local record.
func (s *Systems) Dislike(ctx context.Context, song structures.Song) error {
	if err := s.Client.Dislike(ctx, song.VideoID); err != nil {
		return err
	}

	if s.Database != nil {
		if err := s.Database.UpsertLikedSong(song, structures.LikeStatusDislike); err != nil {
			logger.Error("failed to record dislike locally: %v", err)
		}
	}

	return nil
}

// RemoveLike resets a track rating and drops the local record.
func (s *Systems) RemoveLike(ctx context.Context, song structures.Song) error {
	if err := s.Client.RemoveLike(ctx, song.VideoID); err != nil {
		return err
	}

	if s.Database != nil {
		if err := s.Database.RemoveLikedSong(song.VideoID); err != nil {
			logger.Error("failed to remove local like record: %v", err)
		}
	}

	return nil
}

// SyncLibrary fetches the library playlists and snapshots them locally.
func (s *Systems) SyncLibrary(ctx context.Context) ([]structures.Playlist, error) {
	playlists, err := s.Client.GetLibraryPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	if s.Database != nil {
		if err := s.Database.ReplacePlaylists(playlists); err != nil {
			logger.Error("failed to snapshot library playlists: %v", err)
		}
	}

	return playlists, nil
}

// CachedLibrary returns the last library snapshot without touching the
// network. Used by the shell while offline or before the first sync.
func (s *Systems) CachedLibrary() ([]structures.Playlist, error) {
	if s.Database == nil {
		return nil, nil
	}

	records, err := s.Database.Playlists()
	if err != nil {
		return nil, err
	}

	playlists := make([]structures.Playlist, len(records))
	for i, record := range records {
		playlists[i] = record.Playlist
	}

	return playlists, nil
}
