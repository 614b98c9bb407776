// Package vidinfo extracts canonical media metadata (title, playable
// formats, thumbnails, descriptions) from web pages published by many
// unrelated sources.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., regexp2/, goquery/, sqlite/) or
// after the orchestration concern they own (extract/, site/).
package vidinfo
