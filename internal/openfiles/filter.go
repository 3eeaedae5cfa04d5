package openfiles

import "strings"

// DefaultExtensions are the suffixes recognised as Markdown documents.
var DefaultExtensions = []string{".md", ".markdown"}

// FilterLaunchArgs returns, in order, the arguments whose lowercased form ends
// with one of extensions (DefaultExtensions when none are given). Arguments
// are returned unmodified and are not checked against the filesystem. The
// program name must not be part of args.
func FilterLaunchArgs(args []string, extensions ...string) []string {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	out := make([]string, 0, len(args))
	for _, arg := range args {
		if hasExtension(arg, extensions) {
			out = append(out, arg)
		}
	}
	return out
}

func hasExtension(arg string, extensions []string) bool {
	lower := strings.ToLower(arg)
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
