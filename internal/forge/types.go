package forge

import (
	"net/url"
	"strings"
)

// Type identifies the hosting platform of a repository.
type Type string

const (
	TypeGitHub    Type = "github"
	TypeGitLab    Type = "gitlab"
	TypeForgejo   Type = "forgejo"
	TypeBitbucket Type = "bitbucket"
	TypeUnknown   Type = ""
)

// DisplayName is the label shown for the repository link in the site header.
func (t Type) DisplayName() string {
	switch t {
	case TypeGitHub:
		return "GitHub"
	case TypeGitLab:
		return "GitLab"
	case TypeForgejo:
		return "Forgejo"
	case TypeBitbucket:
		return "Bitbucket"
	default:
		return ""
	}
}

// RepoURL expands the owner/name shorthand to a GitHub URL. Full URLs are
// returned without a trailing slash.
func RepoURL(repo string) string {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return ""
	}
	if strings.Contains(repo, "://") {
		return strings.TrimSuffix(repo, "/")
	}
	return "https://github.com/" + strings.Trim(repo, "/")
}

// DetectForgeType guesses the forge from a repository URL or shorthand.
func DetectForgeType(repo string) Type {
	u, err := url.Parse(RepoURL(repo))
	if err != nil || u.Host == "" {
		return TypeUnknown
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "github"):
		return TypeGitHub
	case strings.Contains(host, "gitlab"):
		return TypeGitLab
	case strings.Contains(host, "bitbucket"):
		return TypeBitbucket
	case host == "codeberg.org", strings.Contains(host, "forgejo"), strings.Contains(host, "gitea"):
		return TypeForgejo
	default:
		return TypeUnknown
	}
}

// RepoLabel returns the explicit label, the forge name, or "Source".
func RepoLabel(label, repo string) string {
	if label != "" {
		return label
	}
	if name := DetectForgeType(repo).DisplayName(); name != "" {
		return name
	}
	return "Source"
}
