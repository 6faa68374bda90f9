// Package configs manages oidcrypt configuration.
//
// Configuration is a single TOML file at
// $XDG_CONFIG_HOME/oidcrypt/config.toml with three tables:
//
//   - [storage]: where account envelopes live ("file" directory or OS "keyring")
//   - [http]: trust anchors, retries and timeout for JWKS fetches
//   - [audit]: whether and where the JSON-lines audit trail is written
//
// A missing file is not an error; LoadConfig returns defaults. Fields left
// out of the file are filled with defaults as well, while unknown keys are
// rejected so that typos do not silently fall back.
//
// # Settings
//
// OidcryptSettings holds the resolved config and data directories. It is
// initialized at startup and tests override its fields to point at
// temporary directories.
package configs
