package server

import "github.com/trackflix/trackflix/internal/schema"

// SeedDemo loads a small demo catalog into the stub so the dashboard has
// something to show on first launch.
func (s *Stub) SeedDemo() {
	s.Seed("fullmovies", []schema.Entity{
		{
			"id":          int64(1),
			"title":       "Dune",
			"description": "A noble family battles for control of a desert planet.",
			"rating":      8.5,
			"genres":      []string{"Sci-Fi", "Adventure"},
			"cast":        []string{"Timothée Chalamet", "Rebecca Ferguson"},
			"releaseDate": "2021-10-22",
			"image":       "https://images.trackflix.dev/posters/dune.png",
			"trailer":     "https://images.trackflix.dev/trailers/dune.mp4",
		},
		{
			"id":          int64(2),
			"title":       "Arrival",
			"description": "A linguist decodes the language of visiting extraterrestrials.",
			"rating":      7.9,
			"genres":      []string{"Sci-Fi", "Drama"},
			"cast":        []string{"Amy Adams", "Jeremy Renner"},
			"releaseDate": "2016-11-11",
			"image":       "https://images.trackflix.dev/posters/arrival.png",
			"trailer":     "https://images.trackflix.dev/trailers/arrival.mp4",
		},
	})

	s.Seed("liveshows", []schema.Entity{
		{
			"id":        int64(1),
			"title":     "Morning Newsroom",
			"channel":   "TFX One",
			"category":  "News",
			"airTime":   "2026-09-01T07:00",
			"image":     "https://images.trackflix.dev/live/newsroom.png",
			"streamURL": "https://stream.trackflix.dev/live/newsroom",
		},
	})

	s.Seed("livetvshows", []schema.Entity{
		{
			"id":          int64(1),
			"title":       "Morning Newsroom",
			"description": "Live coverage of the day's headlines with rotating hosts.",
			"hosts":       []string{"Priya Shah", "Tom Okafor"},
			"language":    "English",
			"image":       "https://images.trackflix.dev/live/newsroom.png",
			"streamURL":   "https://stream.trackflix.dev/live/newsroom",
		},
	})

	s.Seed("recommendationcelebrities", []schema.Entity{
		{
			"id":         int64(1),
			"name":       "Denis Villeneuve",
			"knownFor":   []string{"Dune", "Arrival", "Blade Runner 2049"},
			"popularity": 92.0,
			"image":      "https://images.trackflix.dev/celebs/villeneuve.png",
		},
	})

	s.Seed("users", []schema.Entity{
		{
			"id":             int64(1),
			"username":       "admin",
			"email":          "admin@trackflix.dev",
			"avatar":         "https://images.trackflix.dev/avatars/admin.png",
			"favoriteGenres": []string{"Sci-Fi", "Documentary"},
		},
	})

	s.Seed("watchlist", []schema.Entity{
		{
			"id":        int64(1),
			"title":     "Arrival",
			"image":     "https://images.trackflix.dev/posters/arrival.png",
			"addedDate": "2026-08-30",
		},
	})
}
