package cue

import "strings"

// Sentinel value for metadata fields the sheet never sets. DATE is the
// exception: it stays empty when absent.
const unknownField = "Unknown"

// Tags is one metadata context: the well-known fields every split consumer
// cares about, plus an overflow map for unrecognized REM sub-keys. Each
// context owns its values; children are seeded by copy, so mutating a
// parent after a child exists never leaks into the child.
type Tags struct {
	Album      string
	Performer  string
	Title      string
	Genre      string
	Date       string
	Comment    string
	DiscID     string
	DiscNumber string
	Extra      map[string]string
}

// DiscTags returns the top-level context defaults for a new sheet.
func DiscTags() Tags {
	return Tags{Album: unknownField, Performer: unknownField}
}

// Clone deep-copies the context so a child can diverge from its parent.
func (t Tags) Clone() Tags {
	clone := t
	if t.Extra != nil {
		clone.Extra = make(map[string]string, len(t.Extra))
		for key, value := range t.Extra {
			clone.Extra[key] = value
		}
	}
	return clone
}

// Set upserts a metadata key. Well-known keys land in their struct fields;
// anything else goes to the overflow map.
func (t *Tags) Set(key, value string) {
	switch strings.ToUpper(key) {
	case "ALBUM":
		t.Album = value
	case "PERFORMER":
		t.Performer = value
	case "TITLE":
		t.Title = value
	case "GENRE":
		t.Genre = value
	case "DATE":
		t.Date = value
	case "COMMENT":
		t.Comment = value
	case "DISCID":
		t.DiscID = value
	case "DISCNUMBER":
		t.DiscNumber = value
	default:
		if t.Extra == nil {
			t.Extra = make(map[string]string)
		}
		t.Extra[key] = value
	}
}

// Get looks up a metadata key, checking the overflow map for unknown keys.
func (t Tags) Get(key string) string {
	switch strings.ToUpper(key) {
	case "ALBUM":
		return t.Album
	case "PERFORMER":
		return t.Performer
	case "TITLE":
		return t.Title
	case "GENRE":
		return t.Genre
	case "DATE":
		return t.Date
	case "COMMENT":
		return t.Comment
	case "DISCID":
		return t.DiscID
	case "DISCNUMBER":
		return t.DiscNumber
	default:
		return t.Extra[key]
	}
}
