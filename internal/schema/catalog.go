package schema

// Built-in schemas for every Trackflix backend resource. The dashboard,
// CLI commands, export tasks, and the dev stub server all derive their
// behavior from these declarations.

// Movies describes the full movie catalog.
var Movies = Schema{
	Resource: "fullmovies",
	Title:    "Movies",
	Fields: []Field{
		{Name: "id", Label: "ID", Type: ID, Rules: []Rule{RequiredPositiveInteger()}},
		{Name: "title", Label: "Title", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "description", Label: "Description", Type: Text, Rules: []Rule{MinLength(10)}},
		{Name: "rating", Label: "Rating", Type: Number, Rules: []Rule{NumericRange(0, 10)}},
		{Name: "genres", Label: "Genres", Type: List, Rules: []Rule{NonEmptyCommaList()}},
		{Name: "cast", Label: "Cast", Type: List, Rules: []Rule{NonEmptyCommaList()}},
		{Name: "releaseDate", Label: "Release Date", Type: Date, Rules: []Rule{RequiredDate()}},
		{Name: "image", Label: "Poster", Type: Text, Rules: []Rule{URLOrBase64Image()}},
		{Name: "trailer", Label: "Trailer", Type: Text, Rules: []Rule{URL()}},
	},
}

// LiveShows describes the live TV show grid.
var LiveShows = Schema{
	Resource: "liveshows",
	Title:    "Live Shows",
	Fields: []Field{
		{Name: "id", Label: "ID", Type: ID, Rules: []Rule{RequiredPositiveInteger()}},
		{Name: "title", Label: "Title", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "channel", Label: "Channel", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "category", Label: "Category", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "airTime", Label: "Air Time", Type: Date, Rules: []Rule{RequiredDate()}},
		{Name: "image", Label: "Image", Type: Text, Rules: []Rule{URLOrBase64Image()}},
		{Name: "streamURL", Label: "Stream URL", Type: Text, Rules: []Rule{URL()}},
	},
}

// LiveTVDetails describes the detail records behind the live TV grid.
var LiveTVDetails = Schema{
	Resource: "livetvshows",
	Title:    "Live TV Details",
	Fields: []Field{
		{Name: "id", Label: "ID", Type: ID, Rules: []Rule{RequiredPositiveInteger()}},
		{Name: "title", Label: "Title", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "description", Label: "Description", Type: Text, Rules: []Rule{MinLength(10)}},
		{Name: "hosts", Label: "Hosts", Type: List, Rules: []Rule{NonEmptyCommaList()}},
		{Name: "language", Label: "Language", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "image", Label: "Image", Type: Text, Rules: []Rule{URLOrBase64Image()}},
		{Name: "streamURL", Label: "Stream URL", Type: Text, Rules: []Rule{URL()}},
	},
}

// Celebrities describes the recommended celebrity carousel.
var Celebrities = Schema{
	Resource: "recommendationcelebrities",
	Title:    "Celebrities",
	Fields: []Field{
		{Name: "id", Label: "ID", Type: ID, Rules: []Rule{RequiredPositiveInteger()}},
		{Name: "name", Label: "Name", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "knownFor", Label: "Known For", Type: List, Rules: []Rule{NonEmptyCommaList()}},
		{Name: "popularity", Label: "Popularity", Type: Number, Rules: []Rule{NumericRange(0, 100)}},
		{Name: "image", Label: "Photo", Type: Text, Rules: []Rule{URLOrBase64Image()}},
	},
}

// Users describes dashboard user accounts.
var Users = Schema{
	Resource: "users",
	Title:    "Users",
	Fields: []Field{
		{Name: "id", Label: "ID", Type: ID, Rules: []Rule{RequiredPositiveInteger()}},
		{Name: "username", Label: "Username", Type: Text, Rules: []Rule{MinLength(3)}},
		{Name: "email", Label: "Email", Type: Text, Rules: []Rule{Email()}},
		{Name: "avatar", Label: "Avatar", Type: Text, Rules: []Rule{URLOrBase64Image()}},
		{Name: "favoriteGenres", Label: "Favorite Genres", Type: List, Rules: []Rule{NonEmptyCommaList()}},
	},
}

// Watchlist describes a user's saved titles.
var Watchlist = Schema{
	Resource: "watchlist",
	Title:    "Watchlist",
	Fields: []Field{
		{Name: "id", Label: "ID", Type: ID, Rules: []Rule{RequiredPositiveInteger()}},
		{Name: "title", Label: "Title", Type: Text, Rules: []Rule{MinLength(1)}},
		{Name: "image", Label: "Image", Type: Text, Rules: []Rule{URLOrBase64Image()}},
		{Name: "addedDate", Label: "Added", Type: Date, Rules: []Rule{RequiredDate()}},
	},
}

// Catalog returns every built-in schema in dashboard tab order.
func Catalog() []Schema {
	return []Schema{Movies, LiveShows, LiveTVDetails, Celebrities, Users, Watchlist}
}

// ByResource looks up a built-in schema by its REST path segment.
func ByResource(resource string) (Schema, bool) {
	for _, s := range Catalog() {
		if s.Resource == resource {
			return s, true
		}
	}
	return Schema{}, false
}
