package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
	"steamfeeds/internal/steam"
)

// rgGames is assigned inline on the community games page. The match is
// greedy up to the last "];" that is followed by another var statement.
var gamesExpr = regexp.MustCompile(`var rgGames = (?P<json>\[.+\]);\s+var`)

// GamesScanner scrapes a user's public games list.
type GamesScanner struct {
	fetcher ports.Fetcher
	logger  *slog.Logger
}

var _ ports.GameSource = (*GamesScanner)(nil)

// NewGamesScanner wires the HTTP collaborator.
func NewGamesScanner(fetcher ports.Fetcher, log *slog.Logger) *GamesScanner {
	return &GamesScanner{fetcher: fetcher, logger: log}
}

// Scan downloads the games page of userID and extracts its games.
func (g *GamesScanner) Scan(ctx context.Context, userID string) ([]domain.GameRecord, error) {
	pageURL := steam.GamesListURL(userID)

	resp, err := g.fetcher.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch games page: %w", err)
	}

	games, err := ExtractGames(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, err)
	}

	g.debug("scanned games page", "user", userID, "games", len(games))
	return games, nil
}

type rawGame struct {
	AppID       int             `json:"appid"`
	Name        string          `json:"name"`
	FriendlyURL json.RawMessage `json:"friendlyURL"`
}

// ExtractGames finds the embedded rgGames array in a games page and decodes
// it. It returns domain.ErrGamesNotFound when the array is absent.
func ExtractGames(body string) ([]domain.GameRecord, error) {
	payload, ok := findGamesJSON(body)
	if !ok {
		return nil, domain.ErrGamesNotFound
	}

	var raw []rawGame
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decode games json: %w", err)
	}

	games := make([]domain.GameRecord, 0, len(raw))
	for _, r := range raw {
		games = append(games, domain.GameRecord{
			AppID:       r.AppID,
			Name:        r.Name,
			FriendlyURL: friendlyName(r.FriendlyURL),
		})
	}
	return games, nil
}

// findGamesJSON looks inside <script> elements first and falls back to the
// raw body for pages that do not parse as HTML.
func findGamesJSON(body string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err == nil {
		var found string
		doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if match, ok := matchGames(s.Text()); ok {
				found = match
				return false
			}
			return true
		})
		if found != "" {
			return found, true
		}
	}

	return matchGames(body)
}

func matchGames(text string) (string, bool) {
	match := gamesExpr.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[gamesExpr.SubexpIndex("json")], true
}

// friendlyName keeps friendlyURL only when it is a non-empty JSON string;
// Steam sends false for games without one.
func friendlyName(raw json.RawMessage) string {
	if len(raw) == 0 || raw[0] != '"' {
		return ""
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return ""
	}
	return name
}

// IsPrivateProfile reports whether err means the games list was not visible.
func IsPrivateProfile(err error) bool {
	return errors.Is(err, domain.ErrGamesNotFound)
}

func (g *GamesScanner) debug(msg string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
