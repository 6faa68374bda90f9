// Package store persists encrypted account envelopes by name.
//
// Two backends exist: a directory of files (one file per account, owner-only
// permissions) and the operating system keyring. Both hold envelope text as
// produced by the envelope package and never see plaintext.
//
// Each account may have one backup slot, written before a destructive
// rewrite such as a format migration. Backups are not listed as accounts.
package store
