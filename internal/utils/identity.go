package utils

import (
	"os"
	"os/user"
)

const unknownIdentity = "unknown"

// Identity names who ran an operation and where. Fields are never empty.
type Identity struct {
	User string
	Host string
}

// CurrentIdentity looks up the user and host. $USER is used when the user
// database is unavailable, as in minimal containers.
func CurrentIdentity() Identity {
	id := Identity{User: unknownIdentity, Host: unknownIdentity}

	if u, err := user.Current(); err == nil && u.Username != "" {
		id.User = u.Username
	} else if env := os.Getenv("USER"); env != "" {
		id.User = env
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		id.Host = host
	}
	return id
}
