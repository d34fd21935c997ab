package domain

import "errors"

// Origin records which input class produced a candidate. It is metadata only.
type Origin string

const (
	OriginDirectAppID Origin = "appid"
	OriginStoreURL    Origin = "url"
	OriginUserScrape  Origin = "user"
)

// FeedCandidate is a URL believed to serve a Steam RSS feed.
type FeedCandidate struct {
	URL         string
	FallbackURL string
	Text        string
	Origin      Origin
}

// HasFallback reports whether a friendly alternate URL exists.
func (c FeedCandidate) HasFallback() bool {
	return c.FallbackURL != ""
}

// Title returns the display text, or the URL when no text is known.
func (c FeedCandidate) Title() string {
	if c.Text != "" {
		return c.Text
	}
	return c.URL
}

// WithURL returns a copy pointing at url.
func (c FeedCandidate) WithURL(url string) FeedCandidate {
	c.URL = url
	return c
}

// WithText returns a copy carrying the given display text.
func (c FeedCandidate) WithText(text string) FeedCandidate {
	c.Text = text
	return c
}

// GameRecord is one entry of a user's scraped games list.
type GameRecord struct {
	AppID       int
	Name        string
	FriendlyURL string
}

// VerifyOutcome enumerates the terminal verification states.
type VerifyOutcome string

const (
	OutcomeConfirmed VerifyOutcome = "confirmed"
	OutcomeDropped   VerifyOutcome = "dropped"
)

var (
	// ErrGamesNotFound means the games page did not embed a games array,
	// usually because the profile's game details are private.
	ErrGamesNotFound = errors.New("games list not found in page")

	// ErrMalformedFeed means a confirmed feed body lacks <title> markers.
	ErrMalformedFeed = errors.New("malformed feed body")
)
