package api

import (
	"fmt"
	"strings"

	"github.com/lunamoth/resona/internal/structures"
)

// The parsers in this file are pure functions from raw payload trees to
// domain entities. Upstream shapes are undocumented and inconsistent across
// endpoint families, so every field lookup tries known aliases in priority
// order and missing optional fields default instead of failing. Only a
// missing top-level container fails a parse.

// Renderer-shape keys dispatched on when walking section items.
const (
	rendererListItem = "musicResponsiveListItemRenderer"
	rendererTwoRow   = "musicTwoRowItemRenderer"
)

func findTitle(obj map[string]any) string {
	return firstString(obj, [][]string{
		{"title", "runs", "0", "text"},
		{"title", "simpleText"},
		{"name"},
		{"flexColumns", "0", "musicResponsiveListItemFlexColumnRenderer", "text", "runs", "0", "text"},
	})
}

func findVideoID(obj map[string]any) string {
	return firstString(obj, [][]string{
		{"videoId"},
		{"navigationEndpoint", "watchEndpoint", "videoId"},
		{"playlistItemData", "videoId"},
		{"playNavigationEndpoint", "watchEndpoint", "videoId"},
		{"overlay", "musicItemThumbnailOverlayRenderer", "content", "musicPlayButtonRenderer", "playNavigationEndpoint", "watchEndpoint", "videoId"},
	})
}

func findBrowseID(obj map[string]any) string {
	return firstString(obj, [][]string{
		{"navigationEndpoint", "browseEndpoint", "browseId"},
		{"title", "runs", "0", "navigationEndpoint", "browseEndpoint", "browseId"},
		{"browseId"},
	})
}

// findFeedbackTokens collects the add/remove library tokens from either a
// bare token pair or the menu's toggle service entries.
func findFeedbackTokens(obj map[string]any) *structures.FeedbackTokens {
	tokens := structures.FeedbackTokens{
		Add:    getPathString(obj, "feedbackTokens", "add"),
		Remove: getPathString(obj, "feedbackTokens", "remove"),
	}

	if tokens.Add == "" && tokens.Remove == "" {
		items := asSlice(getPath(obj, "menu", "menuRenderer", "items"))
		for _, item := range items {
			toggle := asMap(asMap(item)[`toggleMenuServiceItemRenderer`])
			if toggle == nil {
				continue
			}

			add := getPathString(toggle, "defaultServiceEndpoint", "feedbackEndpoint", "feedbackToken")
			remove := getPathString(toggle, "toggledServiceEndpoint", "feedbackEndpoint", "feedbackToken")

			if add != "" || remove != "" {
				tokens.Add, tokens.Remove = add, remove
				break
			}
		}
	}

	if tokens.Add == "" && tokens.Remove == "" {
		return nil
	}

	return &tokens
}

func findLikeStatus(obj map[string]any) structures.LikeStatus {
	raw := firstString(obj, [][]string{
		{"likeStatus"},
		{"likeButton", "likeButtonRenderer", "likeStatus"},
		{"menu", "menuRenderer", "topLevelButtons", "0", "likeButtonRenderer", "likeStatus"},
	})

	if raw == "" {
		return structures.LikeStatusIndifferent
	}

	return structures.ParseLikeStatus(raw)
}

// parseArtist accepts both full artist objects and bare inline references.
// An inline reference without any id-bearing field gets a synthesized id so
// the entity stays usable as a map key.
func parseArtist(obj map[string]any) *structures.Artist {
	id := firstString(obj, [][]string{
		{"navigationEndpoint", "browseEndpoint", "browseId"},
		{"channelId"},
		{"browseId"},
		{"id"},
	})

	name := firstString(obj, [][]string{
		{"name"},
		{"text"},
		{"title", "runs", "0", "text"},
		{"title", "simpleText"},
	})

	if id == "" && name == "" {
		return nil
	}

	if id == "" {
		id = structures.NewSyntheticID()
	}

	if name == "" {
		name = structures.UnknownArtist
	}

	return &structures.Artist{
		ID:        id,
		Name:      name,
		Thumbnail: findThumbnail(obj),
	}
}

// parseAlbum resolves the album id through its three known field names and
// synthesizes one for title-only inline references.
func parseAlbum(obj map[string]any) *structures.Album {
	id := firstString(obj, [][]string{
		{"navigationEndpoint", "browseEndpoint", "browseId"},
		{"browseId"},
		{"albumId"},
		{"id"},
	})

	title := findTitle(obj)

	if id == "" && title == "" {
		return nil
	}

	if id == "" {
		id = structures.NewSyntheticID()
	}

	if title == "" {
		title = structures.UnknownAlbum
	}

	album := &structures.Album{
		ID:         id,
		Title:      title,
		Thumbnail:  findThumbnail(obj),
		Year:       findYear(obj),
		TrackCount: parseTrackCount(obj["trackCount"]),
	}

	if artists := asSlice(obj["artists"]); artists != nil {
		for _, raw := range artists {
			if artist := parseArtist(asMap(raw)); artist != nil {
				album.Artists = append(album.Artists, *artist)
			}
		}
	}

	return album
}

// findYear picks the release year out of a subtitle run or a direct field.
func findYear(obj map[string]any) string {
	if year := getPathString(obj, "year"); year != "" {
		return year
	}

	runs := asSlice(getPath(obj, "subtitle", "runs"))
	for i := len(runs) - 1; i >= 0; i-- {
		text, _ := asMap(runs[i])["text"].(string)
		if len(text) == 4 && text >= "1000" && text <= "2999" {
			return text
		}
	}

	return ""
}

// parsePlaylist handles playlist references from two-row cards, list rows
// and bare objects.
func parsePlaylist(obj map[string]any) *structures.Playlist {
	id := firstString(obj, [][]string{
		{"navigationEndpoint", "browseEndpoint", "browseId"},
		{"browseId"},
		{"playlistId"},
		{"id"},
	})
	if id == "" {
		return nil
	}

	// Browse ids wrap the playlist id in a VL prefix.
	id = strings.TrimPrefix(id, "VL")

	title := findTitle(obj)
	if title == "" {
		title = structures.UnknownTitle
	}

	playlist := &structures.Playlist{
		ID:          id,
		Title:       title,
		Description: getPathString(obj, "description"),
		Thumbnail:   findThumbnail(obj),
		TrackCount:  findPlaylistTrackCount(obj),
		Author:      findAuthor(obj),
	}

	return playlist
}

// findAuthor accepts either a plain author string or the first entry of an
// authors list.
func findAuthor(obj map[string]any) string {
	if author, ok := obj["author"].(string); ok {
		return author
	}

	if author := getPathString(obj, "author", "name"); author != "" {
		return author
	}

	return firstString(obj, [][]string{
		{"authors", "0", "name"},
		{"authors", "0", "text"},
	})
}

func findPlaylistTrackCount(obj map[string]any) *int {
	for _, field := range []string{"trackCount", "count", "videoCount"} {
		if v, ok := obj[field]; ok {
			if n := parseTrackCount(v); n != nil {
				return n
			}
		}
	}

	return nil
}

// parseSongRow extracts a song from a responsive list row, the shape used by
// playlist pages, search shelves and library lists.
func parseSongRow(obj map[string]any) *structures.Song {
	videoID := findVideoID(obj)
	if videoID == "" {
		return nil
	}

	title := findTitle(obj)
	if title == "" {
		title = structures.UnknownTitle
	}

	song := &structures.Song{
		ID:             videoID,
		VideoID:        videoID,
		Title:          title,
		Thumbnail:      findThumbnail(obj),
		LikeStatus:     findLikeStatus(obj),
		FeedbackTokens: findFeedbackTokens(obj),
	}

	song.Duration = parseDuration(findDurationValue(obj))
	song.Artists, song.Album = parseSecondaryColumn(obj)

	if song.Album == nil {
		if albumObj := asMap(obj["album"]); albumObj != nil {
			song.Album = parseAlbum(albumObj)
		}
	}

	if len(song.Artists) == 0 {
		if inline := parseInlineArtists(obj); len(inline) > 0 {
			song.Artists = inline
		}
	}

	return song
}

func findDurationValue(obj map[string]any) any {
	if v, ok := obj["duration"]; ok {
		return v
	}

	if v, ok := obj["lengthSeconds"]; ok {
		return v
	}

	paths := [][]string{
		{"fixedColumns", "0", "musicResponsiveListItemFixedColumnRenderer", "text", "runs", "0", "text"},
		{"fixedColumns", "0", "musicResponsiveListItemFixedColumnRenderer", "text", "simpleText"},
		{"lengthText", "simpleText"},
	}

	if s := firstString(obj, paths); s != "" {
		return s
	}

	return nil
}

// parseSecondaryColumn walks the second flex column, whose runs alternate
// entity links and separators: artists link to UC channels, albums to MPREb
// pages, and plain runs are inline artist references.
func parseSecondaryColumn(obj map[string]any) ([]structures.Artist, *structures.Album) {
	var artists []structures.Artist
	var album *structures.Album

	runs := asSlice(getPath(obj,
		"flexColumns", 1, "musicResponsiveListItemFlexColumnRenderer", "text", "runs"))

	for _, raw := range runs {
		run := asMap(raw)
		if run == nil {
			continue
		}

		text, _ := run["text"].(string)
		if text == "" || text == " • " || text == " & " || text == ", " {
			continue
		}

		browseID := getPathString(run, "navigationEndpoint", "browseEndpoint", "browseId")

		switch {
		case strings.HasPrefix(browseID, "MPREb_"):
			if album == nil {
				album = &structures.Album{ID: browseID, Title: text}
			}
		case strings.HasPrefix(browseID, "UC"):
			artists = append(artists, structures.Artist{ID: browseID, Name: text})
		case browseID == "" && looksLikeArtistRun(text):
			artists = append(artists, structures.Artist{
				ID:   structures.NewSyntheticID(),
				Name: text,
			})
		}
	}

	return artists, album
}

// looksLikeArtistRun filters out the decorated runs a secondary column mixes
// in with artist names (durations, view counts, release years).
func looksLikeArtistRun(text string) bool {
	if parseDurationString(text) != nil {
		return false
	}

	if len(text) == 4 && text >= "1000" && text <= "2999" {
		return false
	}

	lower := strings.ToLower(text)
	for _, suffix := range []string{" views", " plays", " songs", " song"} {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}

	switch lower {
	case "song", "video", "album", "single", "ep", "playlist", "artist":
		return false
	}

	return true
}

func parseInlineArtists(obj map[string]any) []structures.Artist {
	var artists []structures.Artist

	for _, raw := range asSlice(obj["artists"]) {
		if artist := parseArtist(asMap(raw)); artist != nil {
			artists = append(artists, *artist)
		}
	}

	if len(artists) == 0 {
		if subtitle := firstString(obj, [][]string{
			{"subtitle", "runs", "0", "text"},
			{"subtitle", "simpleText"},
		}); subtitle != "" {
			name := strings.Split(subtitle, " • ")[0]
			if name != "" && looksLikeArtistRun(name) {
				artists = append(artists, structures.Artist{
					ID:   structures.NewSyntheticID(),
					Name: name,
				})
			}
		}
	}

	return artists
}

// parseTwoRowItem dispatches a two-row card to the entity kind its
// navigation target identifies. Unrecognized targets yield nil and the
// caller skips the item.
func parseTwoRowItem(obj map[string]any) *structures.HomeItem {
	if videoID := findVideoID(obj); videoID != "" {
		song := &structures.Song{
			ID:        videoID,
			VideoID:   videoID,
			Title:     findTitle(obj),
			Thumbnail: findThumbnail(obj),
		}

		if song.Title == "" {
			song.Title = structures.UnknownTitle
		}

		song.Artists = parseInlineArtists(obj)

		return &structures.HomeItem{Type: structures.HomeItemSong, Song: song}
	}

	browseID := findBrowseID(obj)

	switch {
	case strings.HasPrefix(browseID, "UC"):
		if artist := parseArtist(obj); artist != nil {
			return &structures.HomeItem{Type: structures.HomeItemArtist, Artist: artist}
		}
	case strings.HasPrefix(browseID, "MPREb_"), strings.HasPrefix(browseID, "OLAK5uy_"):
		if album := parseAlbum(obj); album != nil {
			return &structures.HomeItem{Type: structures.HomeItemAlbum, Album: album}
		}
	case strings.HasPrefix(browseID, "VL"), strings.HasPrefix(browseID, "PL"),
		strings.HasPrefix(browseID, "RDCLAK"):
		if playlist := parsePlaylist(obj); playlist != nil {
			return &structures.HomeItem{Type: structures.HomeItemPlaylist, Playlist: playlist}
		}
	}

	return nil
}

// parseSectionItem dispatches one raw section item by its renderer-shape key.
func parseSectionItem(item map[string]any) *structures.HomeItem {
	if row := asMap(item[rendererListItem]); row != nil {
		if song := parseSongRow(row); song != nil {
			return &structures.HomeItem{Type: structures.HomeItemSong, Song: song}
		}
		// Rows without a watch target navigate to albums or playlists.
		return parseTwoRowItem(row)
	}

	if card := asMap(item[rendererTwoRow]); card != nil {
		return parseTwoRowItem(card)
	}

	return nil
}

// parseHome maps a home feed payload (initial or continuation) to sections.
func parseHome(payload BrowseResponse) (*structures.HomeResponse, error) {
	sectionList := asMap(getPath(payload,
		"contents", "singleColumnBrowseResultsRenderer",
		"tabs", 0, "tabRenderer", "content", "sectionListRenderer"))

	if sectionList == nil {
		sectionList = asMap(getPath(payload, "continuationContents", "sectionListContinuation"))
	}

	if sectionList == nil {
		return nil, parseError("home feed response has no section list")
	}

	home := &structures.HomeResponse{
		Continuation: getPathString(sectionList,
			"continuations", "0", "nextContinuationData", "continuation"),
	}

	for i, raw := range mapSlice(asSlice(sectionList["contents"])) {
		if section := parseHomeSection(raw, i); section != nil {
			home.Sections = append(home.Sections, *section)
		}
	}

	return home, nil
}

func parseHomeSection(raw map[string]any, index int) *structures.HomeSection {
	var header map[string]any
	var items []map[string]any

	if carousel := asMap(raw["musicCarouselShelfRenderer"]); carousel != nil {
		header = asMap(getPath(carousel, "header", "musicCarouselShelfBasicHeaderRenderer"))
		items = mapSlice(asSlice(carousel["contents"]))
	} else if shelf := asMap(raw["musicShelfRenderer"]); shelf != nil {
		header = shelf
		items = mapSlice(asSlice(shelf["contents"]))
	} else {
		// Unrecognized section shape, skip rather than fail the feed.
		return nil
	}

	title := structures.UnknownTitle
	if header != nil {
		if t := findTitle(header); t != "" {
			title = t
		}
	}

	section := &structures.HomeSection{
		ID:      sectionID(header, index),
		Title:   title,
		IsChart: strings.Contains(strings.ToLower(title), "chart"),
	}

	for _, item := range items {
		if parsed := parseSectionItem(item); parsed != nil {
			section.Items = append(section.Items, *parsed)
		}
	}

	return section
}

func sectionID(header map[string]any, index int) string {
	if header != nil {
		if id := getPathString(header,
			"moreContentButton", "buttonRenderer",
			"navigationEndpoint", "browseEndpoint", "browseId"); id != "" {
			return id
		}

		if id := getPathString(header,
			"title", "runs", "0",
			"navigationEndpoint", "browseEndpoint", "browseId"); id != "" {
			return id
		}
	}

	return fmt.Sprintf("section_%d", index)
}

// parseSearch categorizes every recognizable result row. A missing result
// container is a parse failure; an empty but well-formed result set is not.
func parseSearch(payload BrowseResponse) (*structures.SearchResponse, error) {
	if _, ok := payload["contents"]; !ok {
		return nil, parseError("search response has no contents container")
	}

	result := &structures.SearchResponse{}
	seen := make(map[string]bool)

	rows := crawl(map[string]any(payload), func(obj map[string]any) *map[string]any {
		row := asMap(obj[rendererListItem])
		if row == nil {
			return nil
		}
		return &row
	}, func(row map[string]any) string {
		if id := findVideoID(row); id != "" {
			return id
		}
		return findBrowseID(row)
	})

	for _, row := range rows {
		categorizeSearchRow(row, result, seen)
	}

	return result, nil
}

func categorizeSearchRow(row map[string]any, result *structures.SearchResponse, seen map[string]bool) {
	if videoID := findVideoID(row); videoID != "" {
		if seen["song:"+videoID] {
			return
		}

		if song := parseSongRow(row); song != nil {
			seen["song:"+videoID] = true
			result.Songs = append(result.Songs, *song)
		}

		return
	}

	browseID := findBrowseID(row)
	if browseID == "" || seen["browse:"+browseID] {
		return
	}

	switch {
	case strings.HasPrefix(browseID, "UC"):
		if artist := parseArtist(row); artist != nil {
			seen["browse:"+browseID] = true
			result.Artists = append(result.Artists, *artist)
		}
	case strings.HasPrefix(browseID, "MPREb_"), strings.HasPrefix(browseID, "OLAK5uy_"):
		if album := parseAlbum(row); album != nil {
			seen["browse:"+browseID] = true
			result.Albums = append(result.Albums, *album)
		}
	case strings.HasPrefix(browseID, "VL"), strings.HasPrefix(browseID, "PL"),
		strings.HasPrefix(browseID, "RDCLAK"):
		if playlist := parsePlaylist(row); playlist != nil {
			seen["browse:"+browseID] = true
			result.Playlists = append(result.Playlists, *playlist)
		}
	}
}

// parsePlaylistDetail builds the playlist page from its header and track
// rows. The playlist id is passed through because continuation payloads do
// not repeat it.
func parsePlaylistDetail(payload BrowseResponse, id string) (*structures.PlaylistDetail, error) {
	header := asMap(getPath(payload, "header", "musicDetailHeaderRenderer"))

	if header == nil {
		header = asMap(getPath(payload,
			"header", "musicEditablePlaylistDetailHeaderRenderer",
			"header", "musicDetailHeaderRenderer"))
	}

	if header == nil {
		headers := crawl(map[string]any(payload), func(obj map[string]any) *map[string]any {
			h := asMap(obj["musicResponsiveHeaderRenderer"])
			if h == nil {
				return nil
			}
			return &h
		}, func(map[string]any) string { return "header" })

		if len(headers) > 0 {
			header = headers[0]
		}
	}

	if header == nil {
		return nil, parseError("playlist response has no detail header")
	}

	title := findTitle(header)
	if title == "" {
		title = structures.UnknownTitle
	}

	detail := &structures.PlaylistDetail{
		Playlist: structures.Playlist{
			ID:          strings.TrimPrefix(id, "VL"),
			Title:       title,
			Description: descriptionText(header),
			Thumbnail:   findThumbnail(header),
			Author:      playlistAuthor(header),
		},
	}

	// The second subtitle reads like "1,234 songs • 3 hours, 10 minutes".
	stats := strings.Split(runsText(header, "secondSubtitle"), " • ")
	for _, stat := range stats {
		stat = strings.TrimSpace(stat)
		if strings.HasSuffix(stat, "songs") || strings.HasSuffix(stat, "song") ||
			strings.HasSuffix(stat, "tracks") || strings.HasSuffix(stat, "track") {
			detail.TrackCount = parseTrackCount(stat)
		} else if strings.Contains(stat, "minute") || strings.Contains(stat, "hour") {
			detail.TotalDuration = stat
		}
	}

	detail.Tracks = crawl(map[string]any(payload), func(obj map[string]any) *structures.Song {
		row := asMap(obj[rendererListItem])
		if row == nil {
			return nil
		}
		return parseSongRow(row)
	}, func(s structures.Song) string { return s.VideoID })

	return detail, nil
}

func descriptionText(header map[string]any) string {
	if s := runsText(header, "description"); s != "" {
		return s
	}

	return firstString(header, [][]string{
		{"description", "simpleText"},
		{"description", "musicDescriptionShelfRenderer", "description", "runs", "0", "text"},
	})
}

func playlistAuthor(header map[string]any) string {
	if author := findAuthor(header); author != "" {
		return author
	}

	runs := asSlice(getPath(header, "subtitle", "runs"))
	for _, raw := range runs {
		run := asMap(raw)
		if run == nil {
			continue
		}

		if getPathString(run, "navigationEndpoint", "browseEndpoint", "browseId") != "" {
			if text, ok := run["text"].(string); ok {
				return text
			}
		}
	}

	return ""
}

// parseArtistDetail builds the artist page: header biography plus the top
// songs shelf and album carousels.
func parseArtistDetail(payload BrowseResponse, channelID string) (*structures.ArtistDetail, error) {
	header := asMap(getPath(payload, "header", "musicImmersiveHeaderRenderer"))
	if header == nil {
		header = asMap(getPath(payload, "header", "musicVisualHeaderRenderer"))
	}

	if header == nil {
		return nil, parseError("artist response has no header")
	}

	name := findTitle(header)
	if name == "" {
		name = structures.UnknownArtist
	}

	detail := &structures.ArtistDetail{
		Artist: structures.Artist{
			ID:   channelID,
			Name: name,
		},
		Biography:      descriptionText(header),
		LargeThumbnail: findThumbnail(header),
	}

	detail.Songs = crawl(map[string]any(payload), func(obj map[string]any) *structures.Song {
		row := asMap(obj[rendererListItem])
		if row == nil {
			return nil
		}
		return parseSongRow(row)
	}, func(s structures.Song) string { return s.VideoID })

	detail.Albums = crawl(map[string]any(payload), func(obj map[string]any) *structures.Album {
		card := asMap(obj[rendererTwoRow])
		if card == nil {
			return nil
		}

		browseID := findBrowseID(card)
		if !strings.HasPrefix(browseID, "MPREb_") && !strings.HasPrefix(browseID, "OLAK5uy_") {
			return nil
		}

		return parseAlbum(card)
	}, func(a structures.Album) string { return a.ID })

	return detail, nil
}

// parseLibraryPlaylists extracts the playlist cards of a library page.
func parseLibraryPlaylists(payload BrowseResponse) ([]structures.Playlist, error) {
	if _, ok := payload["contents"]; !ok {
		return nil, parseError("library response has no contents container")
	}

	playlists := crawl(map[string]any(payload), func(obj map[string]any) *structures.Playlist {
		var card map[string]any
		if card = asMap(obj[rendererTwoRow]); card == nil {
			card = asMap(obj[rendererListItem])
		}

		if card == nil {
			return nil
		}

		browseID := findBrowseID(card)
		if !strings.HasPrefix(browseID, "VL") && !strings.HasPrefix(browseID, "PL") &&
			!strings.HasPrefix(browseID, "RDCLAK") {
			return nil
		}

		return parsePlaylist(card)
	}, func(p structures.Playlist) string { return p.ID })

	return playlists, nil
}
