// Package access decides what a stored session token may see and where
// denied navigations should land instead. Authorize is a pure function
// of its inputs; the caller re-reads the token on every invocation.
package access

// PathKind identifies one of the three navigable views
type PathKind int

const (
	PathLogin PathKind = iota
	PathProjectList
	PathProjectDetail
)

// Path is a requested view. ProjectID is set only for PathProjectDetail.
type Path struct {
	Kind      PathKind
	ProjectID string
}

// Login returns the login view path
func Login() Path {
	return Path{Kind: PathLogin}
}

// ProjectList returns the project list view path
func ProjectList() Path {
	return Path{Kind: PathProjectList}
}

// ProjectDetail returns the detail view path for a project
func ProjectDetail(projectID string) Path {
	return Path{Kind: PathProjectDetail, ProjectID: projectID}
}

// Decision is the outcome of an authorization check: either Allow, or a
// redirect to RedirectTo. Exactly one of the two shapes is produced for
// every input.
type Decision struct {
	Allow      bool
	RedirectTo Path
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to Path) Decision {
	return Decision{RedirectTo: to}
}

// Authorize maps a stored token and a requested path to a Decision.
// An empty token means no session. master is the configured sentinel
// granting unrestricted access; any other non-empty token is scoped to
// the single project whose id equals the token. Cross-project access
// attempts redirect to login rather than a "forbidden" outcome, so the
// existence of other projects is not leaked.
func Authorize(token string, path Path, master string) Decision {
	if token == "" {
		if path.Kind == PathLogin {
			return allow()
		}
		return redirect(Login())
	}

	if master != "" && token == master {
		if path.Kind == PathLogin {
			return redirect(ProjectList())
		}
		return allow()
	}

	switch path.Kind {
	case PathLogin, PathProjectList:
		// A scoped session is equivalent to its single project
		return redirect(ProjectDetail(token))
	case PathProjectDetail:
		if path.ProjectID != token {
			return redirect(Login())
		}
		return allow()
	}

	// Unknown path kinds fail closed
	return redirect(Login())
}
