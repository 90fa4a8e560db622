package bandcamp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/handiism/album-grid/internal/bandcamp/dto"
	"github.com/handiism/album-grid/internal/model"
)

func TestReleasePaths(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    []string
		wantErr bool
	}{
		{
			name: "single album link",
			html: `<html><body><a href="/album/test-album">Album</a></body></html>`,
			want: []string{"/album/test-album"},
		},
		{
			name: "multiple albums keep page order",
			html: `<html><body>
				<a href="/album/first-album">&quot;</a>
				<a href="/track/single-track">&quot;</a>
				<a href="/album/second-album">&quot;</a>
			</body></html>`,
			want: []string{"/album/first-album", "/track/single-track", "/album/second-album"},
		},
		{
			name: "duplicate albums filtered",
			html: `<html><body>
				<a href="/album/same-album">&quot;</a>
				<a href="/album/same-album">&quot;</a>
			</body></html>`,
			want: []string{"/album/same-album"},
		},
		{
			name:    "no albums found",
			html:    `<html><body>No music here</body></html>`,
			wantErr: true,
		},
		{
			name: "single album artist page",
			html: `<html><body>
				<div id="discography"></div>
				<a href="/album/only-album">Only Album</a>
			</body></html>`,
			want: []string{"/album/only-album"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls, err := ReleasePaths(tt.html)

			if tt.wantErr {
				if !errors.Is(err, ErrNoRelease) {
					t.Errorf("expected ErrNoRelease, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(urls, tt.want) {
				t.Errorf("got %v, want %v", urls, tt.want)
			}
		})
	}
}

func albumPage(title string, artID int64, tracks ...string) string {
	var infos []string
	for i, tr := range tracks {
		infos = append(infos, fmt.Sprintf(`{&quot;track_num&quot;:%d,&quot;title&quot;:&quot;%s&quot;,&quot;duration&quot;:180.5}`, i+1, tr))
	}
	return fmt.Sprintf(`<html>
	<script data-tralbum="{
		&quot;current&quot;:{&quot;title&quot;:&quot;%s&quot;,&quot;release_date&quot;:&quot;01 Jan 2023 00:00:00 GMT&quot;},
		&quot;artist&quot;:&quot;Test Artist&quot;,
		&quot;art_id&quot;:%d,
		&quot;trackinfo&quot;:[%s]
	}"></script>
	</html>`, title, artID, strings.Join(infos, ","))
}

func TestParseRelease(t *testing.T) {
	album, err := ParseRelease(albumPage("Test Album", 1234567890, "First Track", "Second Track"), dto.Artwork700)
	if err != nil {
		t.Fatalf("ParseRelease failed: %v", err)
	}

	if album.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want %q", album.Artist, "Test Artist")
	}
	if album.Title != "Test Album" {
		t.Errorf("Title = %q, want %q", album.Title, "Test Album")
	}
	if album.ReleaseDate.Year() != 2023 {
		t.Errorf("ReleaseDate = %v", album.ReleaseDate)
	}
	if len(album.Tracks) != 2 {
		t.Fatalf("Track count = %d, want 2", len(album.Tracks))
	}
	if album.Tracks[0].Title != "First Track" {
		t.Errorf("Track[0].Title = %q, want %q", album.Tracks[0].Title, "First Track")
	}

	want := model.Locator("https://f4.bcbits.com/img/a1234567890_16.jpg")
	for _, track := range album.Tracks {
		if track.Cover() != want {
			t.Errorf("Cover() = %q, want %q", track.Cover(), want)
		}
	}
}

func TestParseRelease_TrackArtwork(t *testing.T) {
	page := `<script data-tralbum="{
		&quot;current&quot;:{&quot;title&quot;:&quot;Comp&quot;},
		&quot;artist&quot;:&quot;Various&quot;,
		&quot;art_id&quot;:1,
		&quot;trackinfo&quot;:[
			{&quot;title&quot;:&quot;A&quot;,&quot;art_id&quot;:42},
			{&quot;title&quot;:&quot;B&quot;,&quot;art_id&quot;:null}
		]
	}"></script>`

	album, err := ParseRelease(page, "")
	if err != nil {
		t.Fatalf("ParseRelease failed: %v", err)
	}
	if got := album.Tracks[0].Cover(); got != "https://f4.bcbits.com/img/a0000000042_0.jpg" {
		t.Errorf("track art = %q", got)
	}
	if got := album.Tracks[1].Cover(); got != "https://f4.bcbits.com/img/a0000000001_0.jpg" {
		t.Errorf("album art fallback = %q", got)
	}
	if album.Tracks[1].Number != 2 {
		t.Errorf("Number = %d, want position 2", album.Tracks[1].Number)
	}
}

func TestParseRelease_NoArtwork(t *testing.T) {
	page := `<script data-tralbum="{&quot;current&quot;:{&quot;title&quot;:&quot;T&quot;},&quot;trackinfo&quot;:[{&quot;title&quot;:&quot;A&quot;}]}"></script>`
	album, err := ParseRelease(page, "")
	if err != nil {
		t.Fatalf("ParseRelease failed: %v", err)
	}
	if album.HasArtwork() {
		t.Error("album without art_id should have no artwork")
	}
	c := model.NewCollection("x")
	c.AddAlbum(album)
	if len(c.Locators()) != 0 {
		t.Errorf("Locators() = %v, want none", c.Locators())
	}
}

func TestTralbumJSON(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr bool
	}{
		{
			name: "valid data-tralbum",
			html: `<html><script data-tralbum="{&quot;current&quot;:{&quot;title&quot;:&quot;Test&quot;}}"></script></html>`,
		},
		{
			name:    "missing data-tralbum",
			html:    `<html><body>No album data</body></html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tralbumJSON(tt.html)
			if tt.wantErr && !errors.Is(err, ErrNoAlbumData) {
				t.Errorf("expected ErrNoAlbumData, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestJoinURLConcat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fix URL concatenation",
			input: `url: "http://example.bandcamp.com" + "/album/test",`,
			want:  `url: "http://example.bandcamp.com/album/test",`,
		},
		{
			name:  "no change needed",
			input: `url: "http://example.bandcamp.com/album/test",`,
			want:  `url: "http://example.bandcamp.com/album/test",`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinURLConcat(tt.input); got != tt.want {
				t.Errorf("joinURLConcat() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakePages struct {
	mu    sync.Mutex
	pages map[string]string
	hits  []string
}

func (f *fakePages) GetString(ctx context.Context, u string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits = append(f.hits, u)
	page, ok := f.pages[u]
	if !ok {
		return "", fmt.Errorf("HTTP 404: %s", u)
	}
	return page, nil
}

func TestSource_Collection(t *testing.T) {
	pages := &fakePages{pages: map[string]string{
		"https://artist.bandcamp.com/music": `
			<a href="/album/second">&quot;</a>
			<a href="/album/first">&quot;</a>
			<a href="/album/broken">&quot;</a>`,
		"https://artist.bandcamp.com/album/first":  albumPage("First", 1, "a", "b"),
		"https://artist.bandcamp.com/album/second": albumPage("Second", 2, "c"),
	}}

	src := NewSource(pages, dto.ArtworkOriginal, 3)
	var warnings []string
	var mu sync.Mutex
	src.OnWarning(func(msg string) {
		mu.Lock()
		warnings = append(warnings, msg)
		mu.Unlock()
	})

	c, err := src.Collection(context.Background(), "https://artist.bandcamp.com/")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}

	want := []model.Locator{
		"https://f4.bcbits.com/img/a0000000002_0.jpg",
		"https://f4.bcbits.com/img/a0000000001_0.jpg",
		"https://f4.bcbits.com/img/a0000000001_0.jpg",
	}
	if !slices.Equal(c.Locators(), want) {
		t.Errorf("Locators() = %v, want %v", c.Locators(), want)
	}
	if c.Name != "Test Artist" {
		t.Errorf("Name = %q, want artist name", c.Name)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "broken") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestSource_SingleRelease(t *testing.T) {
	pages := &fakePages{pages: map[string]string{
		"https://artist.bandcamp.com/album/first": albumPage("First", 1, "a"),
	}}

	c, err := NewSource(pages, "", 1).Collection(context.Background(), "https://artist.bandcamp.com/album/first")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if c.Name != "First" {
		t.Errorf("Name = %q, want album title", c.Name)
	}
	if len(pages.hits) != 1 {
		t.Errorf("fetched %v, want only the album page", pages.hits)
	}
}

func TestSource_AllReleasesFail(t *testing.T) {
	pages := &fakePages{pages: map[string]string{}}
	_, err := NewSource(pages, "", 1).Collection(context.Background(), "https://artist.bandcamp.com/album/gone")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected joined fetch error, got %v", err)
	}
}

func TestIsBandcampURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://artist.bandcamp.com", true},
		{"https://bandcamp.com/artist", true},
		{"https://music.example.org/album/name", true},
		{"https://example.org/about", false},
		{"/music/playlist.m3u", false},
		{"ftp://artist.bandcamp.com", false},
	}

	for _, tt := range tests {
		if got := IsBandcampURL(tt.raw); got != tt.want {
			t.Errorf("IsBandcampURL(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	u, _ := url.Parse("https://a.bandcamp.com/track/x")
	if !IsReleaseURL(u) {
		t.Error("track URL should be a release URL")
	}
}
