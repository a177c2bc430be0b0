package resource

import "strings"

// ResolveURL resolves ref against the URL of the current page. Absolute
// URLs are returned as-is, "//host/path" takes the current scheme, "/path"
// is taken from the host root, and
// anything else is relative to the current directory. Leading "../"
// segments walk up but never past the host.
func ResolveURL(ref, current string) string {
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	scheme, hostpath, ok := strings.Cut(current, "://")
	if !ok {
		return ref
	}
	host, path, _ := strings.Cut(hostpath, "/")

	if strings.HasPrefix(ref, "//") {
		return scheme + ":" + ref
	}
	if strings.HasPrefix(ref, "/") {
		return scheme + "://" + host + ref
	}

	// directory part of the current path, without the trailing slash
	dir := ""
	if i := strings.LastIndex(path, "/"); i >= 0 {
		dir = path[:i]
	}
	for strings.HasPrefix(ref, "../") {
		ref = strings.TrimPrefix(ref, "../")
		if dir == "" {
			continue
		}
		if i := strings.LastIndex(dir, "/"); i >= 0 {
			dir = dir[:i]
		} else {
			dir = ""
		}
	}
	if dir == "" {
		return scheme + "://" + host + "/" + ref
	}
	return scheme + "://" + host + "/" + dir + "/" + ref
}
