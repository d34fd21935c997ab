package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"steamfeeds/internal/domain"
	"steamfeeds/internal/ports"
)

type pageFetcher struct {
	pages map[string]string
	err   error
	calls []string
}

func (p *pageFetcher) Get(_ context.Context, url string) (ports.Response, error) {
	p.calls = append(p.calls, url)
	if p.err != nil {
		return ports.Response{}, p.err
	}
	return ports.Response{ContentType: "text/html", Body: p.pages[url]}, nil
}

const gamesPage = `<!DOCTYPE html>
<html>
<head><title>Steam Community :: bauke :: Games</title></head>
<body>
<div id="games_list_rows"></div>
<script type="text/javascript">
		var rgGames = [{"appid":400,"name":"Portal","friendlyURL":"Portal","hours_forever":"3.1"},{"appid":620,"name":"Portal 2","friendlyURL":false}];
		var rgChangingGames = [];
</script>
</body>
</html>`

func TestExtractGamesPlainText(t *testing.T) {
	t.Parallel()

	body := `var rgGames = [{"appid":400,"name":"Portal","friendlyURL":"Portal"}];   var rgCards = {};`
	games, err := ExtractGames(body)
	require.NoError(t, err)

	want := []domain.GameRecord{{AppID: 400, Name: "Portal", FriendlyURL: "Portal"}}
	if diff := cmp.Diff(want, games); diff != "" {
		t.Fatalf("unexpected games (-want +got):\n%s", diff)
	}
}

func TestExtractGamesFriendlyURLTypes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`false`:    "",
		`null`:     "",
		`0`:        "",
		`""`:       "",
		`"Portal"`: "Portal",
	}

	for raw, want := range cases {
		body := `var rgGames = [{"appid":400,"name":"Portal","friendlyURL":` + raw + `}];
		var rgCards = {};`
		games, err := ExtractGames(body)
		require.NoError(t, err, raw)
		require.Len(t, games, 1, raw)
		require.Equal(t, want, games[0].FriendlyURL, raw)
	}
}

func TestExtractGamesFromScript(t *testing.T) {
	t.Parallel()

	games, err := ExtractGames(gamesPage)
	require.NoError(t, err)

	want := []domain.GameRecord{
		{AppID: 400, Name: "Portal", FriendlyURL: "Portal"},
		{AppID: 620, Name: "Portal 2"},
	}
	if diff := cmp.Diff(want, games); diff != "" {
		t.Fatalf("unexpected games (-want +got):\n%s", diff)
	}
}

func TestExtractGamesNotFound(t *testing.T) {
	t.Parallel()

	_, err := ExtractGames(`<html><body><div class="profile_private_info">This profile is private.</div></body></html>`)
	require.ErrorIs(t, err, domain.ErrGamesNotFound)
	require.True(t, IsPrivateProfile(err))
}

func TestExtractGamesMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := ExtractGames(`var rgGames = [{"appid":"four hundred"}];
	var rgCards = {};`)
	require.Error(t, err)
	require.False(t, IsPrivateProfile(err))
}

func TestGamesScannerScan(t *testing.T) {
	t.Parallel()

	fetcher := &pageFetcher{pages: map[string]string{
		"https://steamcommunity.com/id/bauke/games/?tab=all": gamesPage,
	}}
	sc := NewGamesScanner(fetcher, nil)

	games, err := sc.Scan(context.Background(), "bauke")
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, []string{"https://steamcommunity.com/id/bauke/games/?tab=all"}, fetcher.calls)
}

func TestGamesScannerScanTransportError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	sc := NewGamesScanner(&pageFetcher{err: boom}, nil)

	_, err := sc.Scan(context.Background(), "bauke")
	require.ErrorIs(t, err, boom)
}
