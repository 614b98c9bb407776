package vidinfo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// UnknownExt is the extension reported when a media URL carries none.
const UnknownExt = "unknown_video"

// Format is one playable rendition of a media item.
type Format struct {
	URL      string `json:"url"`
	Ext      string `json:"ext"`
	FormatID string `json:"format_id"`

	// Quality orders formats of the same item; higher is better.
	Quality int    `json:"quality,omitempty"`
	Note    string `json:"format_note,omitempty"`
}

// Formats is an ordered list of formats, worst to best.
type Formats []*Format

// Add appends f unless a format with the same FormatID is already present.
func (fs *Formats) Add(f *Format) error {
	if f.URL == "" {
		return Errorf(EINVALID, "format %q has no url", f.FormatID)
	}
	if fs.Has(f.FormatID) {
		return Errorf(EINVALID, "duplicate format id %q", f.FormatID)
	}
	*fs = append(*fs, f)
	return nil
}

// Has reports whether a format with the given id exists.
func (fs Formats) Has(id string) bool {
	for _, f := range fs {
		if f.FormatID == id {
			return true
		}
	}
	return false
}

// Best returns the last format, or nil for an empty list.
func (fs Formats) Best() *Format {
	if len(fs) == 0 {
		return nil
	}
	return fs[len(fs)-1]
}

// MediaRecord is the canonical description of one media item.
// Records are not modified once returned by an extractor.
type MediaRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Formats     Formats `json:"formats"`
	Description string  `json:"description,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	Uploader    string  `json:"uploader_id,omitempty"`
	UploadDate  *Date   `json:"upload_date,omitempty"`
	AgeLimit    *int    `json:"age_limit,omitempty"`

	Extractor  string `json:"extractor,omitempty"`
	WebpageURL string `json:"webpage_url,omitempty"`
}

// Validate returns an error if the record violates its invariants.
func (m *MediaRecord) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "media id required")
	}
	if len(m.Formats) == 0 {
		return Errorf(EINVALID, "media %q has no formats", m.ID)
	}
	seen := make(map[string]bool, len(m.Formats))
	for _, f := range m.Formats {
		if f.URL == "" {
			return Errorf(EINVALID, "media %q: format %q has no url", m.ID, f.FormatID)
		}
		if seen[f.FormatID] {
			return Errorf(EINVALID, "media %q: duplicate format id %q", m.ID, f.FormatID)
		}
		seen[f.FormatID] = true
	}
	return nil
}

// AgeLimit returns a pointer to n, for populating MediaRecord.AgeLimit.
func AgeLimit(n int) *int {
	return &n
}

// DetermineExt guesses a file extension from the last path segment of a
// media URL, ignoring the query string and fragment.
func DetermineExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return UnknownExt
	}
	guess := strings.TrimPrefix(path.Ext(u.Path), ".")
	if guess == "" {
		return UnknownExt
	}
	for _, r := range guess {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return UnknownExt
		}
	}
	return guess
}

// dateLayout is the serialized form of a Date.
const dateLayout = "20060102"

// Date is a calendar date serialized as YYYYMMDD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the calendar date of t.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses value using a time layout and returns its calendar date.
func ParseDate(layout, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, Errorf(EINVALID, "invalid date %q", value)
	}
	return NewDate(t), nil
}

// String returns the date as YYYYMMDD.
func (d Date) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, int(d.Month), d.Day)
}

// MarshalJSON encodes the date as a YYYYMMDD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYYMMDD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(dateLayout, s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
