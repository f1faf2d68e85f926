// Package urlutil provides URL parsing utilities.
package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// CommitHTMLURL converts a commit API URL into the page a browser can open.
// URL format: https://api.github.com/repos/owner/repo/commits/sha
// becomes:    https://github.com/owner/repo/commit/sha
func CommitHTMLURL(apiURL string) string {
	u := strings.Replace(apiURL, "https://api.github.com/repos/", "https://github.com/", 1)
	return strings.Replace(u, "/commits/", "/commit/", 1)
}

// RepoShortName returns the repository part of "owner/repo".
func RepoShortName(fullName string) string {
	if i := strings.LastIndexByte(fullName, '/'); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

// ContributionsURL links to a user's contribution activity for a single day.
func ContributionsURL(username, date string) string {
	return fmt.Sprintf("https://github.com/users/%s/contributions?to=%s", url.PathEscape(username), url.QueryEscape(date))
}

// RepoURL links to a user's repository page.
func RepoURL(username, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s", url.PathEscape(username), url.PathEscape(repo))
}
