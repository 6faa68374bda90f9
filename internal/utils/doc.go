// Package utils provides shared helpers for the oidcrypt CLI.
//
//   - CurrentIdentity: user and host recorded in audit entries
//   - FormatNames: formats account names for human-readable output
//   - ReadInput: reads a named file, or stdin for "" and "-"
//   - ResolvePassword: takes the password from OIDCRYPT_PASSWORD or prompts
//     through ReadSecret, which never echoes
package utils
