package domain

// Frontmatter holds the recognized keys of a markdown frontmatter block.
// All keys are optional; absent keys are empty strings.
type Frontmatter struct {
	// Title becomes a synthetic level-1 heading and prefixes boost phrases.
	Title string `yaml:"title"`

	// Subtitle becomes a synthetic level-2 heading and the chunk description.
	Subtitle string `yaml:"subtitle"`

	// Slug overrides the path-derived URL segment for the page.
	Slug string `yaml:"slug"`
}

// MarkdownDocument is one documentation page to extract chunks from.
type MarkdownDocument struct {
	// Path is the document path relative to the content root.
	Path string

	// Frontmatter is the parsed frontmatter block, zero-valued when absent.
	Frontmatter Frontmatter
}

// OpenAPIOperation is one (path, method) operation of an API specification.
type OpenAPIOperation struct {
	// SpecPath is the location the specification was loaded from.
	SpecPath string

	// Path is the route path the operation lives under.
	Path string

	// Method is the lower-case HTTP method.
	Method string

	OperationID string
	Summary     string
	Description string
}
