package structures

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Placeholder values used when the upstream payload omits a display field.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// Album browse ids carry one of two known prefixes depending on whether the
// playlist came from an audio release or an album browse page.
const (
	albumPlaylistPrefix = "OLAK5uy_"
	albumBrowsePrefix   = "MPREb_"
)

// NewSyntheticID returns a fresh identifier for inline entity references that
// carry no id of their own. Two distinct inline references never share an id.
func NewSyntheticID() string {
	return "synthetic_" + uuid.NewString()
}

// Song represents a single playable track.
type Song struct {
	ID             string          `json:"id"`
	VideoID        string          `json:"video_id"`
	Title          string          `json:"title"`
	Artists        []Artist        `json:"artists"`
	Album          *Album          `json:"album,omitempty"`
	Duration       *float64        `json:"duration,omitempty"` // seconds
	Thumbnail      string          `json:"thumbnail,omitempty"`
	LikeStatus     LikeStatus      `json:"like_status,omitempty"`
	FeedbackTokens *FeedbackTokens `json:"feedback_tokens,omitempty"`
}

// DurationDisplay formats the duration as M:SS (or H:MM:SS), falling back to
// a placeholder when the duration is unknown.
func (s Song) DurationDisplay() string {
	if s.Duration == nil {
		return "--:--"
	}

	total := int(*s.Duration)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}

	return fmt.Sprintf("%d:%02d", m, sec)
}

// ArtistNames joins all artist names for display.
func (s Song) ArtistNames() string {
	if len(s.Artists) == 0 {
		return UnknownArtist
	}

	names := make([]string, len(s.Artists))
	for i, a := range s.Artists {
		names[i] = a.Name
	}

	return strings.Join(names, ", ")
}

// Artist represents a channel or an inline artist reference.
type Artist struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Album represents an album or an inline album reference.
type Album struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Artists    []Artist `json:"artists,omitempty"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
	Year       string   `json:"year,omitempty"`
	TrackCount *int     `json:"track_count,omitempty"`
}

// Playlist represents a playlist reference as it appears in lists and feeds.
type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	TrackCount  *int   `json:"track_count,omitempty"`
	Author      string `json:"author,omitempty"`
}

// IsAlbum reports whether this playlist id actually identifies an album.
func (p Playlist) IsAlbum() bool {
	return strings.HasPrefix(p.ID, albumPlaylistPrefix) ||
		strings.HasPrefix(p.ID, albumBrowsePrefix)
}

// PlaylistDetail is a playlist page with its full track listing.
type PlaylistDetail struct {
	Playlist

	Tracks        []Song `json:"tracks"`
	TotalDuration string `json:"total_duration,omitempty"`
}

// ArtistDetail is an artist page with biography and top content.
type ArtistDetail struct {
	Artist

	Biography      string  `json:"biography,omitempty"`
	Songs          []Song  `json:"songs"`
	Albums         []Album `json:"albums"`
	LargeThumbnail string  `json:"large_thumbnail,omitempty"`
}

// HomeItemType tags the concrete entity held by a HomeItem.
type HomeItemType string

const (
	HomeItemSong     HomeItemType = "song"
	HomeItemAlbum    HomeItemType = "album"
	HomeItemPlaylist HomeItemType = "playlist"
	HomeItemArtist   HomeItemType = "artist"
)

// HomeItem is a tagged union over the entity kinds a feed section can carry.
type HomeItem struct {
	Type     HomeItemType `json:"type"`
	Song     *Song        `json:"song,omitempty"`
	Album    *Album       `json:"album,omitempty"`
	Playlist *Playlist    `json:"playlist,omitempty"`
	Artist   *Artist      `json:"artist,omitempty"`
}

// HomeSection is one shelf of the home feed.
type HomeSection struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Items   []HomeItem `json:"items"`
	IsChart bool       `json:"is_chart"`
}

// HomeResponse is the parsed home feed, possibly paginated by a continuation.
type HomeResponse struct {
	Sections     []HomeSection `json:"sections"`
	Continuation string        `json:"continuation,omitempty"`
}

// IsEmpty reports whether no section carries any item.
func (h HomeResponse) IsEmpty() bool {
	for _, s := range h.Sections {
		if len(s.Items) > 0 {
			return false
		}
	}

	return true
}

// SearchResponse groups search matches by entity kind.
type SearchResponse struct {
	Songs     []Song     `json:"songs"`
	Albums    []Album    `json:"albums"`
	Artists   []Artist   `json:"artists"`
	Playlists []Playlist `json:"playlists"`
}

// IsEmpty reports whether all four result lists are empty.
func (r SearchResponse) IsEmpty() bool {
	return len(r.Songs) == 0 && len(r.Albums) == 0 &&
		len(r.Artists) == 0 && len(r.Playlists) == 0
}

// AllItems concatenates the results in a fixed order: songs, albums,
// artists, playlists.
func (r SearchResponse) AllItems() []HomeItem {
	items := make([]HomeItem, 0, len(r.Songs)+len(r.Albums)+len(r.Artists)+len(r.Playlists))

	for i := range r.Songs {
		items = append(items, HomeItem{Type: HomeItemSong, Song: &r.Songs[i]})
	}

	for i := range r.Albums {
		items = append(items, HomeItem{Type: HomeItemAlbum, Album: &r.Albums[i]})
	}

	for i := range r.Artists {
		items = append(items, HomeItem{Type: HomeItemArtist, Artist: &r.Artists[i]})
	}

	for i := range r.Playlists {
		items = append(items, HomeItem{Type: HomeItemPlaylist, Playlist: &r.Playlists[i]})
	}

	return items
}

// LikeStatus is the server's three-valued rating for a track.
type LikeStatus string

const (
	LikeStatusLike        LikeStatus = "LIKE"
	LikeStatusDislike     LikeStatus = "DISLIKE"
	LikeStatusIndifferent LikeStatus = "INDIFFERENT"
)

// ParseLikeStatus maps the wire string onto a LikeStatus, defaulting to
// indifferent for anything unrecognized.
func ParseLikeStatus(s string) LikeStatus {
	switch LikeStatus(s) {
	case LikeStatusLike, LikeStatusDislike, LikeStatusIndifferent:
		return LikeStatus(s)
	default:
		return LikeStatusIndifferent
	}
}

func (l LikeStatus) String() string { return string(l) }

func (l LikeStatus) IsLiked() bool { return l == LikeStatusLike }

func (l LikeStatus) IsDisliked() bool { return l == LikeStatusDislike }

// FeedbackTokens authorize add/remove-from-library actions on one entity.
// Either token may be absent when the action is unsupported.
type FeedbackTokens struct {
	Add    string `json:"add,omitempty"`
	Remove string `json:"remove,omitempty"`
}

// Token selects the add or remove token. Empty string means the action is
// unavailable for this entity.
func (f FeedbackTokens) Token(forAdding bool) string {
	if forAdding {
		return f.Add
	}

	return f.Remove
}
