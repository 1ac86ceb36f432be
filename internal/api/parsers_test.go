package api

import (
	"errors"
	"testing"

	"github.com/lunamoth/resona/internal/structures"
)

const songRowFixture = `{
	"playlistItemData": {"videoId": "vid123"},
	"flexColumns": [
		{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [
			{"text": "My Song"}
		]}}},
		{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [
			{"text": "First Artist", "navigationEndpoint": {"browseEndpoint": {"browseId": "UCabc"}}},
			{"text": " • "},
			{"text": "The Album", "navigationEndpoint": {"browseEndpoint": {"browseId": "MPREb_alb1"}}}
		]}}}
	],
	"fixedColumns": [
		{"musicResponsiveListItemFixedColumnRenderer": {"text": {"runs": [{"text": "3:05"}]}}}
	],
	"thumbnail": {"musicThumbnailRenderer": {"thumbnail": {"thumbnails": [{"url": "thumb.jpg"}]}}}
}`

func TestParseSongRow(t *testing.T) {
	song := parseSongRow(mustJSON(t, songRowFixture))
	if song == nil {
		t.Fatal("parseSongRow() = nil")
	}

	if song.VideoID != "vid123" || song.ID != "vid123" {
		t.Errorf("ids = %q/%q, want vid123", song.ID, song.VideoID)
	}

	if song.Title != "My Song" {
		t.Errorf("Title = %q", song.Title)
	}

	if len(song.Artists) != 1 || song.Artists[0].ID != "UCabc" || song.Artists[0].Name != "First Artist" {
		t.Errorf("Artists = %+v", song.Artists)
	}

	if song.Album == nil || song.Album.ID != "MPREb_alb1" || song.Album.Title != "The Album" {
		t.Errorf("Album = %+v", song.Album)
	}

	if song.Duration == nil || *song.Duration != 185 {
		t.Errorf("Duration = %v, want 185", song.Duration)
	}

	if song.Thumbnail != "thumb.jpg" {
		t.Errorf("Thumbnail = %q", song.Thumbnail)
	}
}

func TestParseSongRowMissingTitleDefaults(t *testing.T) {
	song := parseSongRow(mustJSON(t, `{"videoId": "v1"}`))
	if song == nil {
		t.Fatal("parseSongRow() = nil")
	}

	if song.Title != structures.UnknownTitle {
		t.Errorf("Title = %q, want placeholder", song.Title)
	}

	if song.Duration != nil {
		t.Errorf("Duration = %v, want nil when absent", *song.Duration)
	}
}

func TestParseSongRowNoVideoID(t *testing.T) {
	if song := parseSongRow(mustJSON(t, `{"title": {"runs": [{"text": "x"}]}}`)); song != nil {
		t.Errorf("parseSongRow() = %+v, want nil without a watch target", song)
	}
}

func TestParseArtistInlineFallback(t *testing.T) {
	first := parseArtist(mustJSON(t, `{"name": "X"}`))
	second := parseArtist(mustJSON(t, `{"name": "X"}`))

	if first == nil || second == nil {
		t.Fatal("inline artist references should parse")
	}

	if first.ID == "" || second.ID == "" {
		t.Error("synthesized ids must be non-empty")
	}

	if first.ID == second.ID {
		t.Error("two distinct inline references received the same synthesized id")
	}

	if first.Name != "X" {
		t.Errorf("Name = %q", first.Name)
	}
}

func TestParseArtistMissingNameDefaults(t *testing.T) {
	artist := parseArtist(mustJSON(t, `{"browseId": "UCxyz"}`))
	if artist == nil {
		t.Fatal("parseArtist() = nil")
	}

	if artist.Name != structures.UnknownArtist {
		t.Errorf("Name = %q, want placeholder", artist.Name)
	}

	if artist.ID != "UCxyz" {
		t.Errorf("ID = %q", artist.ID)
	}
}

func TestParseAlbumIDAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"browseId", `{"browseId": "MPREb_1", "title": {"runs": [{"text": "A"}]}}`, "MPREb_1"},
		{"albumId", `{"albumId": "MPREb_2", "title": {"runs": [{"text": "A"}]}}`, "MPREb_2"},
		{"generic id", `{"id": "MPREb_3", "name": "A"}`, "MPREb_3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			album := parseAlbum(mustJSON(t, tt.raw))
			if album == nil {
				t.Fatal("parseAlbum() = nil")
			}

			if album.ID != tt.want {
				t.Errorf("ID = %q, want %q", album.ID, tt.want)
			}
		})
	}
}

func TestParseAlbumInlineFallback(t *testing.T) {
	first := parseAlbum(mustJSON(t, `{"name": "Title Only"}`))
	second := parseAlbum(mustJSON(t, `{"name": "Title Only"}`))

	if first == nil || second == nil {
		t.Fatal("title-only inline album references should parse")
	}

	if first.ID == "" || first.ID == second.ID {
		t.Errorf("synthesized album ids must be unique and non-empty, got %q and %q",
			first.ID, second.ID)
	}
}

func TestParseAlbumYearFromSubtitle(t *testing.T) {
	album := parseAlbum(mustJSON(t, `{
		"browseId": "MPREb_y",
		"title": {"runs": [{"text": "A"}]},
		"subtitle": {"runs": [{"text": "Album"}, {"text": " • "}, {"text": "2019"}]}
	}`))
	if album == nil {
		t.Fatal("parseAlbum() = nil")
	}

	if album.Year != "2019" {
		t.Errorf("Year = %q, want 2019", album.Year)
	}
}

func TestParsePlaylistAuthorSources(t *testing.T) {
	fromString := parsePlaylist(mustJSON(t, `{"playlistId": "PL1", "name": "P", "author": "Alice"}`))
	if fromString == nil || fromString.Author != "Alice" {
		t.Errorf("author from string = %+v", fromString)
	}

	fromList := parsePlaylist(mustJSON(t, `{"playlistId": "PL2", "name": "P", "authors": [{"name": "Bob"}]}`))
	if fromList == nil || fromList.Author != "Bob" {
		t.Errorf("author from list = %+v", fromList)
	}
}

func TestParsePlaylistStripsBrowsePrefix(t *testing.T) {
	playlist := parsePlaylist(mustJSON(t, `{"browseId": "VLPLtest123", "name": "P"}`))
	if playlist == nil {
		t.Fatal("parsePlaylist() = nil")
	}

	if playlist.ID != "PLtest123" {
		t.Errorf("ID = %q, want VL prefix stripped", playlist.ID)
	}
}

func TestParsePlaylistTrackCountString(t *testing.T) {
	playlist := parsePlaylist(mustJSON(t, `{"playlistId": "PL3", "name": "P", "count": "1,234"}`))
	if playlist == nil || playlist.TrackCount == nil || *playlist.TrackCount != 1234 {
		t.Errorf("TrackCount = %+v, want 1234", playlist)
	}
}

const homeFixture = `{
	"contents": {"singleColumnBrowseResultsRenderer": {"tabs": [{"tabRenderer": {"content": {"sectionListRenderer": {
		"contents": [
			{"musicCarouselShelfRenderer": {
				"header": {"musicCarouselShelfBasicHeaderRenderer": {"title": {"runs": [
					{"text": "Quick picks", "navigationEndpoint": {"browseEndpoint": {"browseId": "FEmusic_mixed"}}}
				]}}},
				"contents": [
					{"musicResponsiveListItemRenderer": {
						"playlistItemData": {"videoId": "v1"},
						"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Song One"}]}}}]
					}},
					{"musicTwoRowItemRenderer": {
						"title": {"runs": [{"text": "Album One"}]},
						"navigationEndpoint": {"browseEndpoint": {"browseId": "MPREb_a1"}}
					}},
					{"unknownFutureRenderer": {"anything": true}}
				]
			}},
			{"musicCarouselShelfRenderer": {
				"header": {"musicCarouselShelfBasicHeaderRenderer": {"title": {"runs": [{"text": "Top charts"}]}}},
				"contents": [
					{"musicTwoRowItemRenderer": {
						"title": {"runs": [{"text": "Daily Top 100"}]},
						"navigationEndpoint": {"browseEndpoint": {"browseId": "PLchart42"}}
					}}
				]
			}}
		],
		"continuations": [{"nextContinuationData": {"continuation": "tok-1"}}]
	}}}}]}}
}`

func TestParseHome(t *testing.T) {
	home, err := parseHome(mustJSON(t, homeFixture))
	if err != nil {
		t.Fatalf("parseHome() error = %v", err)
	}

	if len(home.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(home.Sections))
	}

	first := home.Sections[0]

	if first.Title != "Quick picks" {
		t.Errorf("section title = %q", first.Title)
	}

	if first.ID != "FEmusic_mixed" {
		t.Errorf("section id = %q, want browse id from header", first.ID)
	}

	// Two recognized items; the unknown renderer shape is skipped, not fatal.
	if len(first.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(first.Items))
	}

	if first.Items[0].Type != structures.HomeItemSong || first.Items[0].Song.VideoID != "v1" {
		t.Errorf("first item = %+v", first.Items[0])
	}

	if first.Items[1].Type != structures.HomeItemAlbum || first.Items[1].Album.ID != "MPREb_a1" {
		t.Errorf("second item = %+v", first.Items[1])
	}

	if first.IsChart {
		t.Error("quick picks should not be flagged as a chart")
	}

	if !home.Sections[1].IsChart {
		t.Error("chart section not flagged")
	}

	if home.Continuation != "tok-1" {
		t.Errorf("continuation = %q", home.Continuation)
	}

	if home.IsEmpty() {
		t.Error("feed with items reported empty")
	}
}

func TestParseHomeContinuationShape(t *testing.T) {
	home, err := parseHome(mustJSON(t, `{
		"continuationContents": {"sectionListContinuation": {
			"contents": [{"musicShelfRenderer": {"title": {"runs": [{"text": "More"}]}, "contents": []}}]
		}}
	}`))
	if err != nil {
		t.Fatalf("parseHome() error = %v", err)
	}

	if len(home.Sections) != 1 || home.Sections[0].Title != "More" {
		t.Errorf("sections = %+v", home.Sections)
	}

	if home.Continuation != "" {
		t.Errorf("continuation = %q, want empty on last page", home.Continuation)
	}
}

func TestParseHomeMissingContainer(t *testing.T) {
	_, err := parseHome(mustJSON(t, `{"responseContext": {}}`))

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindParse {
		t.Errorf("err = %v, want parse error for missing section list", err)
	}
}

const searchFixture = `{
	"contents": {"tabbedSearchResultsRenderer": {"tabs": [{"tabRenderer": {"content": {"sectionListRenderer": {"contents": [
		{"musicShelfRenderer": {"contents": [
			{"musicResponsiveListItemRenderer": {
				"playlistItemData": {"videoId": "s1"},
				"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Hit Song"}]}}}]
			}},
			{"musicResponsiveListItemRenderer": {
				"navigationEndpoint": {"browseEndpoint": {"browseId": "UCart1"}},
				"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Some Artist"}]}}}]
			}},
			{"musicResponsiveListItemRenderer": {
				"navigationEndpoint": {"browseEndpoint": {"browseId": "MPREb_alb"}},
				"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Some Album"}]}}}]
			}},
			{"musicResponsiveListItemRenderer": {
				"navigationEndpoint": {"browseEndpoint": {"browseId": "VLPLlist"}},
				"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Some Playlist"}]}}}]
			}}
		]}}
	]}}}}]}}
}`

func TestParseSearch(t *testing.T) {
	result, err := parseSearch(mustJSON(t, searchFixture))
	if err != nil {
		t.Fatalf("parseSearch() error = %v", err)
	}

	if len(result.Songs) != 1 || result.Songs[0].VideoID != "s1" {
		t.Errorf("Songs = %+v", result.Songs)
	}

	if len(result.Artists) != 1 || result.Artists[0].ID != "UCart1" {
		t.Errorf("Artists = %+v", result.Artists)
	}

	if len(result.Albums) != 1 || result.Albums[0].ID != "MPREb_alb" {
		t.Errorf("Albums = %+v", result.Albums)
	}

	if len(result.Playlists) != 1 || result.Playlists[0].ID != "PLlist" {
		t.Errorf("Playlists = %+v", result.Playlists)
	}
}

func TestParseSearchMissingContainer(t *testing.T) {
	_, err := parseSearch(mustJSON(t, `{"responseContext": {}}`))

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindParse {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestParseSearchEmptyButWellFormed(t *testing.T) {
	result, err := parseSearch(mustJSON(t, `{"contents": {}}`))
	if err != nil {
		t.Fatalf("parseSearch() error = %v, empty result sets are not errors", err)
	}

	if !result.IsEmpty() {
		t.Errorf("result = %+v, want empty", result)
	}
}

const playlistFixture = `{
	"header": {"musicDetailHeaderRenderer": {
		"title": {"runs": [{"text": "Road Trip"}]},
		"description": {"runs": [{"text": "Songs for the road"}]},
		"subtitle": {"runs": [
			{"text": "Playlist"},
			{"text": " • "},
			{"text": "Carol", "navigationEndpoint": {"browseEndpoint": {"browseId": "UCcarol"}}}
		]},
		"secondSubtitle": {"runs": [{"text": "1,234 songs"}, {"text": " • "}, {"text": "3 hours, 10 minutes"}]}
	}},
	"contents": {"x": [
		{"musicResponsiveListItemRenderer": {
			"playlistItemData": {"videoId": "t1"},
			"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Track One"}]}}}]
		}},
		{"musicResponsiveListItemRenderer": {
			"playlistItemData": {"videoId": "t2"},
			"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Track Two"}]}}}]
		}}
	]}
}`

func TestParsePlaylistDetail(t *testing.T) {
	detail, err := parsePlaylistDetail(mustJSON(t, playlistFixture), "VLPLroadtrip")
	if err != nil {
		t.Fatalf("parsePlaylistDetail() error = %v", err)
	}

	if detail.ID != "PLroadtrip" {
		t.Errorf("ID = %q", detail.ID)
	}

	if detail.Title != "Road Trip" {
		t.Errorf("Title = %q", detail.Title)
	}

	if detail.Description != "Songs for the road" {
		t.Errorf("Description = %q", detail.Description)
	}

	if detail.Author != "Carol" {
		t.Errorf("Author = %q", detail.Author)
	}

	if detail.TrackCount == nil || *detail.TrackCount != 1234 {
		t.Errorf("TrackCount = %v, want 1234", detail.TrackCount)
	}

	if detail.TotalDuration != "3 hours, 10 minutes" {
		t.Errorf("TotalDuration = %q", detail.TotalDuration)
	}

	if len(detail.Tracks) != 2 || detail.Tracks[0].VideoID != "t1" || detail.Tracks[1].VideoID != "t2" {
		t.Errorf("Tracks = %+v", detail.Tracks)
	}

	if detail.IsAlbum() {
		t.Error("PL-prefixed playlist flagged as album")
	}
}

func TestParsePlaylistDetailMissingHeader(t *testing.T) {
	_, err := parsePlaylistDetail(mustJSON(t, `{"contents": {}}`), "PLx")

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindParse {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestParseArtistDetail(t *testing.T) {
	detail, err := parseArtistDetail(mustJSON(t, `{
		"header": {"musicImmersiveHeaderRenderer": {
			"title": {"runs": [{"text": "The Band"}]},
			"description": {"runs": [{"text": "Formed in a garage."}]},
			"thumbnail": {"musicThumbnailRenderer": {"thumbnail": {"thumbnails": [{"url": "big.jpg"}]}}}
		}},
		"contents": {"x": [
			{"musicShelfRenderer": {"contents": [
				{"musicResponsiveListItemRenderer": {
					"playlistItemData": {"videoId": "top1"},
					"flexColumns": [{"musicResponsiveListItemFlexColumnRenderer": {"text": {"runs": [{"text": "Top Song"}]}}}]
				}}
			]}},
			{"musicCarouselShelfRenderer": {"contents": [
				{"musicTwoRowItemRenderer": {
					"title": {"runs": [{"text": "Debut"}]},
					"navigationEndpoint": {"browseEndpoint": {"browseId": "MPREb_debut"}}
				}}
			]}}
		]}
	}`), "UCband")
	if err != nil {
		t.Fatalf("parseArtistDetail() error = %v", err)
	}

	if detail.ID != "UCband" || detail.Name != "The Band" {
		t.Errorf("identity = %q/%q", detail.ID, detail.Name)
	}

	if detail.Biography != "Formed in a garage." {
		t.Errorf("Biography = %q", detail.Biography)
	}

	if detail.LargeThumbnail != "big.jpg" {
		t.Errorf("LargeThumbnail = %q", detail.LargeThumbnail)
	}

	if len(detail.Songs) != 1 || detail.Songs[0].VideoID != "top1" {
		t.Errorf("Songs = %+v", detail.Songs)
	}

	if len(detail.Albums) != 1 || detail.Albums[0].ID != "MPREb_debut" {
		t.Errorf("Albums = %+v", detail.Albums)
	}
}

func TestParseLibraryPlaylists(t *testing.T) {
	playlists, err := parseLibraryPlaylists(mustJSON(t, `{
		"contents": {"x": [
			{"musicTwoRowItemRenderer": {
				"title": {"runs": [{"text": "Workout"}]},
				"navigationEndpoint": {"browseEndpoint": {"browseId": "VLPLworkout"}}
			}},
			{"musicTwoRowItemRenderer": {
				"title": {"runs": [{"text": "Not a playlist"}]},
				"navigationEndpoint": {"browseEndpoint": {"browseId": "UCsomeone"}}
			}}
		]}
	}`))
	if err != nil {
		t.Fatalf("parseLibraryPlaylists() error = %v", err)
	}

	if len(playlists) != 1 || playlists[0].ID != "PLworkout" || playlists[0].Title != "Workout" {
		t.Errorf("playlists = %+v", playlists)
	}
}

func TestFindLikeStatus(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want structures.LikeStatus
	}{
		{"direct field", `{"likeStatus": "LIKE"}`, structures.LikeStatusLike},
		{
			"like button",
			`{"likeButton": {"likeButtonRenderer": {"likeStatus": "DISLIKE"}}}`,
			structures.LikeStatusDislike,
		},
		{
			"menu top-level button",
			`{"menu": {"menuRenderer": {"topLevelButtons": [{"likeButtonRenderer": {"likeStatus": "LIKE"}}]}}}`,
			structures.LikeStatusLike,
		},
		{"absent", `{"title": {"runs": [{"text": "x"}]}}`, structures.LikeStatusIndifferent},
		{"unrecognized value", `{"likeStatus": "MAYBE"}`, structures.LikeStatusIndifferent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findLikeStatus(mustJSON(t, tt.raw)); got != tt.want {
				t.Errorf("findLikeStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindFeedbackTokensFromMenu(t *testing.T) {
	tokens := findFeedbackTokens(mustJSON(t, `{
		"menu": {"menuRenderer": {"items": [
			{"menuNavigationItemRenderer": {}},
			{"toggleMenuServiceItemRenderer": {
				"defaultServiceEndpoint": {"feedbackEndpoint": {"feedbackToken": "add-tok"}},
				"toggledServiceEndpoint": {"feedbackEndpoint": {"feedbackToken": "rm-tok"}}
			}}
		]}}
	}`))

	if tokens == nil {
		t.Fatal("findFeedbackTokens() = nil")
	}

	if tokens.Add != "add-tok" || tokens.Remove != "rm-tok" {
		t.Errorf("tokens = %+v", tokens)
	}
}
