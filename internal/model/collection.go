package model

// Collection is an ordered list of track records, such as a playlist, an
// album or an artist discography.
type Collection struct {
	// Name is used for the {name} placeholder in output paths.
	Name string

	// Tracks keeps the order in which the source listed them.
	Tracks []*Track
}

// NewCollection creates an empty collection with the given name.
func NewCollection(name string) *Collection {
	return &Collection{Name: name}
}

// Add appends tracks to the collection.
func (c *Collection) Add(tracks ...*Track) {
	c.Tracks = append(c.Tracks, tracks...)
}

// AddAlbum appends every track of album.
func (c *Collection) AddAlbum(album *Album) {
	c.Tracks = append(c.Tracks, album.Tracks...)
}

// Locators extracts one cover locator per track, in track order.
// Tracks without a cover are skipped. Duplicates are kept.
func (c *Collection) Locators() []Locator {
	locators := make([]Locator, 0, len(c.Tracks))
	for _, track := range c.Tracks {
		if track == nil {
			continue
		}
		if cover := track.Cover(); !cover.IsZero() {
			locators = append(locators, cover)
		}
	}
	return locators
}
