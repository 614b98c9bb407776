package vidinfo

// Converter converts HTML fragments to plain Markdown text.
type Converter interface {
	// Convert transforms an HTML fragment, such as a description block,
	// into Markdown.
	Convert(html string) (string, error)
}
