package forge

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// GenerateEditURL constructs a web UI edit URL for a documentation file.
// repo is a repository URL or owner/name shorthand, docsDir the docs root
// inside the repository and filePath the file relative to it (forward
// slashes). Returns empty string if inputs are insufficient or the forge
// type is unsupported.
func GenerateEditURL(forgeType Type, repo, branch, docsDir, filePath string) string {
	base := RepoURL(repo)
	if forgeType == TypeUnknown || base == "" || branch == "" || filePath == "" {
		return ""
	}
	file := strings.TrimPrefix(path.Join(docsDir, filePath), "/")
	switch forgeType {
	case TypeGitHub:
		return fmt.Sprintf("%s/edit/%s/%s", base, branch, file)
	case TypeGitLab:
		return fmt.Sprintf("%s/-/edit/%s/%s", base, branch, file)
	case TypeForgejo:
		return fmt.Sprintf("%s/_edit/%s/%s", base, branch, file)
	case TypeBitbucket:
		return fmt.Sprintf("%s/src/%s/%s?mode=edit&spa=0&at=%s&fileviewer=file-view-default",
			base, branch, file, url.QueryEscape(branch))
	default:
		return ""
	}
}
