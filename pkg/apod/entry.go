package apod

// Entry is one day's record from the APOD API: a title, an explanation,
// a media URL, and the media type. Immutable once parsed.
type Entry struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl,omitempty"`
}

// IsImage reports whether the entry's media is a raster image.
// Video days (and any future media kinds) are a skip, not a failure.
func (e *Entry) IsImage() bool {
	return e.MediaType == "image"
}

// ImageURL returns the best available image URL, preferring the
// high-definition variant when the API provides one.
func (e *Entry) ImageURL() string {
	if e.HDURL != "" {
		return e.HDURL
	}
	return e.URL
}
