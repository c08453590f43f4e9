// Package git reads documentation history from the git work tree the docs
// live in.
//
// It is used to annotate resolved pages with the time of the most recent
// commit that touched their source file, the value the site generator
// shows next to its "last updated" label.
package git
