// Package steam builds Steam community URLs and extracts identifiers from
// user-typed input.
package steam

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	storeURLExpr   = regexp.MustCompile(`(?i)^https?://store\.steampowered\.com/app/(?P<appid>\d+)`)
	bareUserIDExpr = regexp.MustCompile(`(?i)^\w+$`)
	profileURLExpr = regexp.MustCompile(`(?i)https?://steamcommunity\.com/id/(?P<userid>\w+)`)
)

// FeedURL returns the RSS feed URL for an AppID or a friendly URL name.
func FeedURL(token any) string {
	return fmt.Sprintf("https://steamcommunity.com/games/%v/rss/", token)
}

// GamesListURL returns the page listing every game a user owns.
func GamesListURL(userID string) string {
	return fmt.Sprintf("https://steamcommunity.com/id/%s/games/?tab=all", userID)
}

// AppIDFromStoreURL pulls the AppID out of a store page URL.
func AppIDFromStoreURL(raw string) (int, bool) {
	match := storeURLExpr.FindStringSubmatch(raw)
	if match == nil {
		return 0, false
	}

	appID, err := strconv.Atoi(match[storeURLExpr.SubexpIndex("appid")])
	if err != nil {
		return 0, false
	}
	return appID, true
}

// IsBareUserID reports whether s is a plain community ID such as "bauke".
func IsBareUserID(s string) bool {
	return bareUserIDExpr.MatchString(s)
}

// UserIDFromProfileURL extracts the ID from a steamcommunity.com/id/ URL.
func UserIDFromProfileURL(raw string) (string, bool) {
	match := profileURLExpr.FindStringSubmatch(raw)
	if match == nil {
		return "", false
	}
	return match[profileURLExpr.SubexpIndex("userid")], true
}

// ResolveUserID accepts either a bare ID or a profile URL.
func ResolveUserID(raw string) (string, bool) {
	if IsBareUserID(raw) {
		return raw, true
	}
	return UserIDFromProfileURL(raw)
}
