package domain

// Boost weights applied to every chunk that carries a non-empty boost phrase.
// The remote store uses them at query time to bias scoring toward chunks
// whose boost phrase matches the query.
const (
	// SemanticDistanceFactor is the distance factor for semantic boosts.
	SemanticDistanceFactor = 0.3

	// FulltextBoostFactor is the weight for full-text boosts.
	FulltextBoostFactor = 1.3
)

// ChunkRecord is the normalized unit moving through the pipeline.
// Extractors create records, the uploader consumes them once; there is
// no caching and no identity beyond structural equality.
//
// JSON tags match the remote store's chunk-create payload.
type ChunkRecord struct {
	// HTML is the hypertext content. It always begins with a heading
	// fragment followed by a body fragment (body may be empty).
	HTML string `json:"chunk_html"`

	// Link is the absolute URL of the page this chunk came from.
	Link string `json:"link"`

	// TagSet is an ordered sequence of tags. No uniqueness requirement.
	TagSet []string `json:"tag_set"`

	// Metadata carries arbitrary key-value context (url, hierarchy, heading, ...).
	Metadata map[string]any `json:"metadata"`

	// GroupTrackingIDs identify the source document/path. Every chunk from
	// one document shares one group id, letting the remote store group
	// search results back to their source page.
	GroupTrackingIDs []string `json:"group_tracking_ids"`

	// ConvertHTMLToText asks the remote store to index the text content.
	// Always true for this pipeline.
	ConvertHTMLToText bool `json:"convert_html_to_text"`

	// SemanticBoost biases semantic scoring toward the phrase. Optional.
	SemanticBoost *SemanticBoost `json:"semantic_boost,omitempty"`

	// FulltextBoost biases full-text scoring toward the phrase. Optional.
	FulltextBoost *FulltextBoost `json:"fulltext_boost,omitempty"`
}

// SemanticBoost is a phrase plus a distance factor applied at query time.
type SemanticBoost struct {
	Phrase         string  `json:"phrase"`
	DistanceFactor float64 `json:"distance_factor"`
}

// FulltextBoost is a phrase plus a boost factor applied at query time.
type FulltextBoost struct {
	Phrase      string  `json:"phrase"`
	BoostFactor float64 `json:"boost_factor"`
}

// WithBoosts sets both boosts from a single phrase using the fixed pipeline
// factors. An empty phrase leaves the record unboosted.
func (c *ChunkRecord) WithBoosts(phrase string) *ChunkRecord {
	if phrase == "" {
		return c
	}
	c.SemanticBoost = &SemanticBoost{Phrase: phrase, DistanceFactor: SemanticDistanceFactor}
	c.FulltextBoost = &FulltextBoost{Phrase: phrase, BoostFactor: FulltextBoostFactor}
	return c
}
