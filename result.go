package vidinfo

import "encoding/json"

// ResultKind identifies which variant a Result holds.
type ResultKind string

// Result kinds, named after their serialized _type.
const (
	KindMedia     ResultKind = "video"
	KindReference ResultKind = "url"
	KindPlaylist  ResultKind = "playlist"
)

// Reference is an instruction to re-extract a different URL, optionally
// with a named extractor.
type Reference struct {
	URL           string `json:"url"`
	ExtractorHint string `json:"ie_key,omitempty"`
}

// Playlist is an ordered list of entries that are either media records or
// references still to be resolved.
type Playlist struct {
	ID      string    `json:"id,omitempty"`
	Title   string    `json:"title,omitempty"`
	Entries []*Result `json:"entries"`
}

// Result is the tagged outcome of one extraction: exactly one of Media,
// Reference or Playlist is set, matching Kind.
type Result struct {
	Kind      ResultKind
	Media     *MediaRecord
	Reference *Reference
	Playlist  *Playlist
}

// MediaResult wraps a media record.
func MediaResult(m *MediaRecord) *Result {
	return &Result{Kind: KindMedia, Media: m}
}

// ReferenceResult wraps a delegation to url with an optional extractor hint.
func ReferenceResult(url, hint string) *Result {
	return &Result{Kind: KindReference, Reference: &Reference{URL: url, ExtractorHint: hint}}
}

// PlaylistResult wraps a playlist.
func PlaylistResult(id, title string, entries []*Result) *Result {
	return &Result{Kind: KindPlaylist, Playlist: &Playlist{ID: id, Title: title, Entries: entries}}
}

// Validate checks that the variant named by Kind is set and, for media,
// that the record is valid.
func (r *Result) Validate() error {
	switch r.Kind {
	case KindMedia:
		if r.Media == nil {
			return Errorf(EINVALID, "media result without record")
		}
		return r.Media.Validate()
	case KindReference:
		if r.Reference == nil || r.Reference.URL == "" {
			return Errorf(EINVALID, "reference result without url")
		}
	case KindPlaylist:
		if r.Playlist == nil {
			return Errorf(EINVALID, "playlist result without playlist")
		}
	default:
		return Errorf(EINVALID, "unknown result kind %q", r.Kind)
	}
	return nil
}

// MediaRecords flattens the result into its media records in order,
// descending into nested playlists. References are skipped.
func (r *Result) MediaRecords() []*MediaRecord {
	switch r.Kind {
	case KindMedia:
		return []*MediaRecord{r.Media}
	case KindPlaylist:
		var out []*MediaRecord
		for _, e := range r.Playlist.Entries {
			out = append(out, e.MediaRecords()...)
		}
		return out
	}
	return nil
}

// MarshalJSON encodes the held variant with a _type discriminator.
func (r *Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case KindMedia:
		return json.Marshal(struct {
			Type ResultKind `json:"_type"`
			*MediaRecord
		}{r.Kind, r.Media})
	case KindReference:
		return json.Marshal(struct {
			Type ResultKind `json:"_type"`
			*Reference
		}{r.Kind, r.Reference})
	case KindPlaylist:
		return json.Marshal(struct {
			Type ResultKind `json:"_type"`
			*Playlist
		}{r.Kind, r.Playlist})
	}
	return nil, Errorf(EINVALID, "unknown result kind %q", r.Kind)
}

// UnmarshalJSON decodes a result written by MarshalJSON.
func (r *Result) UnmarshalJSON(b []byte) error {
	var head struct {
		Type ResultKind `json:"_type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	r.Kind = head.Type
	switch head.Type {
	case KindMedia:
		r.Media = &MediaRecord{}
		return json.Unmarshal(b, r.Media)
	case KindReference:
		r.Reference = &Reference{}
		return json.Unmarshal(b, r.Reference)
	case KindPlaylist:
		r.Playlist = &Playlist{}
		return json.Unmarshal(b, r.Playlist)
	}
	return Errorf(EINVALID, "unknown result type %q", head.Type)
}
