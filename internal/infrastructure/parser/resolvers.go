package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
	"steamfeeds/internal/scanner"
	"steamfeeds/internal/steam"
)

// PrivateProfileHint tells the user how to expose their games list.
const PrivateProfileHint = `Make sure "Game Details" in Privacy Settings is set to Public.`

// AppIDResolver turns a numeric AppID into one candidate.
type AppIDResolver struct{}

var _ scanner.Resolver = AppIDResolver{}

func (AppIDResolver) Name() domain.Origin { return domain.OriginDirectAppID }

func (AppIDResolver) Resolve(_ context.Context, req scanner.Request) ([]domain.FeedCandidate, error) {
	if req.AppID < 0 {
		return nil, nil
	}
	return []domain.FeedCandidate{appCandidate(req.AppID, domain.OriginDirectAppID)}, nil
}

// StoreURLResolver reads the AppID out of a store page URL.
type StoreURLResolver struct{}

var _ scanner.Resolver = StoreURLResolver{}

func (StoreURLResolver) Name() domain.Origin { return domain.OriginStoreURL }

func (StoreURLResolver) Resolve(_ context.Context, req scanner.Request) ([]domain.FeedCandidate, error) {
	appID, ok := steam.AppIDFromStoreURL(req.Input)
	if !ok {
		return nil, nil
	}
	return []domain.FeedCandidate{appCandidate(appID, domain.OriginStoreURL)}, nil
}

func appCandidate(appID int, origin domain.Origin) domain.FeedCandidate {
	return domain.FeedCandidate{
		URL:    steam.FeedURL(appID),
		Text:   fmt.Sprintf("Steam AppID %d", appID),
		Origin: origin,
	}
}

// UserResolver emits one candidate per game in a user's public library.
type UserResolver struct {
	games  ports.GameSource
	diag   io.Writer
	logger *slog.Logger
}

var _ scanner.Resolver = (*UserResolver)(nil)

// NewUserResolver wires the games list scraper. Private profiles are
// reported on diag regardless of the log level.
func NewUserResolver(games ports.GameSource, diag io.Writer, log *slog.Logger) *UserResolver {
	return &UserResolver{games: games, diag: diag, logger: log}
}

func (u *UserResolver) Name() domain.Origin { return domain.OriginUserScrape }

// Resolve skips input that is neither a bare ID nor a profile URL. A private
// games list is reported and contributes nothing.
func (u *UserResolver) Resolve(ctx context.Context, req scanner.Request) ([]domain.FeedCandidate, error) {
	userID, ok := steam.ResolveUserID(req.Input)
	if !ok {
		return nil, nil
	}

	games, err := u.games.Scan(ctx, userID)
	if IsPrivateProfile(err) {
		pageURL := steam.GamesListURL(userID)
		if u.diag != nil {
			fmt.Fprintf(u.diag, "Couldn't scan games from: %s\n%s\n", pageURL, PrivateProfileHint)
		}
		if u.logger != nil {
			u.logger.Warn("couldn't scan games", "url", pageURL)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.FeedCandidate, 0, len(games))
	for _, game := range games {
		candidate := domain.FeedCandidate{
			URL:    steam.FeedURL(game.AppID),
			Text:   game.Name,
			Origin: domain.OriginUserScrape,
		}
		if game.FriendlyURL != "" {
			candidate.FallbackURL = steam.FeedURL(game.FriendlyURL)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
