package scaffold

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/mermaidlint/internal/errors"
)

// IssueRef identifies a GitHub issue.
type IssueRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r IssueRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

var (
	issueURLPattern = regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+)/(?:issues|pull)/(\d+)/?(?:[?#].*)?$`)
	repoPattern     = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)
	remotePattern   = regexp.MustCompile(`^(?:[a-z+]+://)?(?:[^@/]+@)?[^:/]+(?::\d+)?[:/]([^/]+)/([^/]+?)(?:\.git)?/?$`)
)

// ParseIssueRef accepts an issue URL or number. A bare number takes its
// repository from repo (OWNER/REPO) or, failing that, from the remote URL.
func ParseIssueRef(issue, repo, remote string) (IssueRef, error) {
	issue = strings.TrimSpace(issue)

	if m := issueURLPattern.FindStringSubmatch(issue); m != nil {
		n, _ := strconv.Atoi(m[3])
		return IssueRef{Owner: m[1], Repo: m[2], Number: n}, nil
	}

	n, err := strconv.Atoi(strings.TrimPrefix(issue, "#"))
	if err != nil || n <= 0 {
		return IssueRef{}, errors.New(errors.ErrCodeScaffoldIssueRef, fmt.Sprintf("not an issue number or URL: %q", issue))
	}

	if repo != "" {
		m := repoPattern.FindStringSubmatch(repo)
		if m == nil {
			return IssueRef{}, errors.New(errors.ErrCodeScaffoldIssueRef, fmt.Sprintf("repository must be OWNER/REPO: %q", repo))
		}
		return IssueRef{Owner: m[1], Repo: m[2], Number: n}, nil
	}

	if m := remotePattern.FindStringSubmatch(remote); remote != "" && m != nil {
		return IssueRef{Owner: m[1], Repo: m[2], Number: n}, nil
	}

	return IssueRef{}, errors.New(errors.ErrCodeScaffoldIssueRef, "cannot determine repository for issue "+issue).
		WithSuggestion("Pass --repo OWNER/REPO or an issue URL")
}

// IssueMeta is what the template needs from an issue.
type IssueMeta struct {
	Title string
	URL   string
}

// MetadataSource looks up issue metadata.
type MetadataSource interface {
	Lookup(ctx context.Context, ref IssueRef) (*IssueMeta, error)
}

// GitHubSource reads issues through the GitHub REST API.
type GitHubSource struct {
	Client *github.Client
}

// NewGitHubSource returns a source authenticated with token, or anonymous
// when token is empty. A non-empty baseURL targets GitHub Enterprise.
func NewGitHubSource(ctx context.Context, token, baseURL string) (*GitHubSource, error) {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(hc)
	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse GitHub API URL: %w", err)
		}
		client.BaseURL = u
	}
	return &GitHubSource{Client: client}, nil
}

// Lookup fetches the issue title and web URL.
func (g *GitHubSource) Lookup(ctx context.Context, ref IssueRef) (*IssueMeta, error) {
	issue, _, err := g.Client.Issues.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", ref, err)
	}
	return &IssueMeta{Title: issue.GetTitle(), URL: issue.GetHTMLURL()}, nil
}
