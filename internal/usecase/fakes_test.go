package usecase

import (
	"context"
	"errors"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
)

var errNoRoute = errors.New("no canned response")

type fakeFetcher struct {
	responses map[string]ports.Response
	calls     []string
}

func (f *fakeFetcher) Get(_ context.Context, url string) (ports.Response, error) {
	f.calls = append(f.calls, url)
	resp, ok := f.responses[url]
	if !ok {
		return ports.Response{}, errNoRoute
	}
	return resp, nil
}

func xmlFeed(title string) ports.Response {
	return ports.Response{
		ContentType: "text/xml",
		Body:        `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>` + title + `</title><item><title>News</title></item></channel></rss>`,
	}
}

func htmlPage() ports.Response {
	return ports.Response{ContentType: "text/html", Body: "<html><head><title>Steam Community :: Error</title></head></html>"}
}

type fakeGames map[string][]domain.GameRecord

func (f fakeGames) Scan(_ context.Context, userID string) ([]domain.GameRecord, error) {
	games, ok := f[userID]
	if !ok {
		return nil, domain.ErrGamesNotFound
	}
	return games, nil
}
