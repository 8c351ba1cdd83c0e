package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	// Handle ~/path
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return unchanged if we can't get home
		}
		return filepath.Join(home, path[2:])
	}

	// Handle standalone ~
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	return path
}

// ExpandCredentials replaces credential variables in a string:
//   - ${user} - the credential file's user field
//   - ${pass} - the credential file's pass field
//
// The store DSN uses this so credentials never appear in the config file.
// Strings without either variable are returned unchanged.
func ExpandCredentials(s string, creds *Credentials) string {
	if s == "" || creds == nil {
		return s
	}

	result := s
	if strings.Contains(result, "${user}") {
		result = strings.ReplaceAll(result, "${user}", creds.User)
	}
	if strings.Contains(result, "${pass}") {
		result = strings.ReplaceAll(result, "${pass}", creds.Pass)
	}
	return result
}
