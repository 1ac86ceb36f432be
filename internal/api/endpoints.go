package api

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// EndpointConfig describes one known server endpoint. Instances are
// process-wide constants; the catalog is never mutated at runtime.
type EndpointConfig struct {
	ID           string
	Name         string
	Description  string
	RequiresAuth bool
	Implemented  bool
	Notes        string
}

// BrowseEndpoints lists the known content-page endpoints, keyed by browse id.
var BrowseEndpoints = []EndpointConfig{
	{
		ID:          "FEmusic_home",
		Name:        "Home Feed",
		Description: "Personalized home feed sections",
		Implemented: true,
	},
	{
		ID:           "FEmusic_liked_playlists",
		Name:         "Library Playlists",
		Description:  "Playlists saved to the user's library",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:           "VLLM",
		Name:         "Liked Songs",
		Description:  "The auto-generated liked songs playlist",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:          "FEmusic_explore",
		Name:        "Explore",
		Description: "Explore landing page",
		Notes:       "same section shapes as home, untested",
	},
	{
		ID:          "FEmusic_charts",
		Name:        "Charts",
		Description: "Top songs and trending charts",
		Notes:       "needs a country code in formData",
	},
	{
		ID:          "FEmusic_new_releases",
		Name:        "New Releases",
		Description: "New albums and singles",
	},
	{
		ID:          "FEmusic_moods_and_genres",
		Name:        "Moods & Genres",
		Description: "Mood and genre category grid",
	},
	{
		ID:           "FEmusic_history",
		Name:         "History",
		Description:  "Recently played tracks",
		RequiresAuth: true,
		Notes:        "rows carry a played-at column, parser missing",
	},
	{
		ID:           "FEmusic_listen_again",
		Name:         "Listen Again",
		Description:  "Recently and frequently played mixes",
		RequiresAuth: true,
	},
}

// ActionEndpoints lists the known side-effecting endpoints.
var ActionEndpoints = []EndpointConfig{
	{
		ID:           "like/like",
		Name:         "Like",
		Description:  "Rate a track thumbs-up",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:           "like/dislike",
		Name:         "Dislike",
		Description:  "Rate a track thumbs-down",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:           "like/removelike",
		Name:         "Remove Rating",
		Description:  "Reset a track rating to indifferent",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:           "subscription/subscribe",
		Name:         "Subscribe",
		Description:  "Subscribe to an artist channel",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:           "subscription/unsubscribe",
		Name:         "Unsubscribe",
		Description:  "Unsubscribe from an artist channel",
		RequiresAuth: true,
		Implemented:  true,
	},
	{
		ID:           "feedback",
		Name:         "Library Feedback",
		Description:  "Add or remove an entity from the library via feedback token",
		RequiresAuth: true,
		Implemented:  true,
	},
}

// FindEndpoint returns the catalog entry with the given id.
func FindEndpoint(id string) (EndpointConfig, bool) {
	for _, ep := range BrowseEndpoints {
		if ep.ID == id {
			return ep, true
		}
	}

	for _, ep := range ActionEndpoints {
		if ep.ID == id {
			return ep, true
		}
	}

	return EndpointConfig{}, false
}

// Cache key prefixes per endpoint family. Mutating actions invalidate whole
// families by these prefixes.
const (
	prefixHome     = "home_"
	prefixSearch   = "search_"
	prefixPlaylist = "playlist_"
	prefixArtist   = "artist_"
	prefixLibrary  = "library_"
	prefixLiked    = "liked_"
)

// request is the internal description of one server call: route and body
// parameters plus the caching class it belongs to. A zero ttl marks the
// request uncacheable.
type request struct {
	route        string
	params       map[string]any
	family       string
	ttl          time.Duration
	requiresAuth bool
}

// fingerprint derives the cache key from the endpoint family and the request
// parameters, deterministically ordered.
func (r request) fingerprint() string {
	keys := make([]string, 0, len(r.params))
	for k := range r.params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, r.route)

	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r.params[k]))
	}

	return r.family + strings.Join(parts, "&")
}

func homeRequest(continuation string) request {
	params := map[string]any{"browseId": "FEmusic_home"}
	if continuation != "" {
		params = map[string]any{"continuation": continuation}
	}

	return request{route: "browse", params: params, family: prefixHome, ttl: TTLHome}
}

func searchRequest(query string) request {
	return request{
		route:  "search",
		params: map[string]any{"query": query},
		family: prefixSearch,
		ttl:    TTLSearch,
	}
}

func playlistRequest(id string) request {
	// Playlist browse ids are the playlist id with a VL prefix; album browse
	// ids pass through unchanged.
	browseID := id
	if !strings.HasPrefix(id, "VL") && !strings.HasPrefix(id, "MPREb_") {
		browseID = "VL" + id
	}

	return request{
		route:  "browse",
		params: map[string]any{"browseId": browseID},
		family: prefixPlaylist,
		ttl:    TTLPlaylist,
	}
}

func artistRequest(channelID string) request {
	return request{
		route:  "browse",
		params: map[string]any{"browseId": channelID},
		family: prefixArtist,
		ttl:    TTLArtist,
	}
}

func libraryPlaylistsRequest() request {
	return request{
		route:        "browse",
		params:       map[string]any{"browseId": "FEmusic_liked_playlists"},
		family:       prefixLibrary,
		ttl:          TTLPlaylist,
		requiresAuth: true,
	}
}

func likedSongsRequest() request {
	return request{
		route:        "browse",
		params:       map[string]any{"browseId": "VLLM"},
		family:       prefixLiked,
		ttl:          TTLPlaylist,
		requiresAuth: true,
	}
}

func rateRequest(route, videoID string) request {
	return request{
		route:        route,
		params:       map[string]any{"target": map[string]any{"videoId": videoID}},
		requiresAuth: true,
	}
}

func subscriptionRequest(route string, channelIDs ...string) request {
	return request{
		route:        route,
		params:       map[string]any{"channelIds": channelIDs},
		requiresAuth: true,
	}
}

func feedbackRequest(tokens ...string) request {
	return request{
		route:        "feedback",
		params:       map[string]any{"feedbackTokens": tokens},
		requiresAuth: true,
	}
}

func probeRequest(ep EndpointConfig) request {
	route := "browse"
	params := map[string]any{"browseId": ep.ID}

	if strings.Contains(ep.ID, "/") || ep.ID == "feedback" {
		route = ep.ID
		params = map[string]any{}
	}

	return request{route: route, params: params, requiresAuth: ep.RequiresAuth}
}
