package models

// Recipe is a single recipe as returned by the search providers and stored
// in favorites. IDs are strings because providers may use opaque identifiers;
// numeric provider IDs are converted on the way in.
type Recipe struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Image          string   `json:"image,omitempty"`
	ReadyInMinutes int      `json:"ready_in_minutes,omitempty"`
	Servings       int      `json:"servings,omitempty"`
	SourceURL      string   `json:"source_url,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	Cuisines       []string `json:"cuisines,omitempty"`
	Diets          []string `json:"diets,omitempty"`
	// Favorited is an annotation computed against the favorites store at
	// read time. It is never persisted with search results.
	Favorited bool `json:"favorited"`
}
