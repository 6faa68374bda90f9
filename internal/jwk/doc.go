// Package jwk generates, exports and imports the asymmetric keys the agent
// uses to sign client assertions.
//
// # Ownership
//
// A *Key is owned by whoever generated or imported it. Call Release once the
// key has been exported or used; Release wipes the private parts. Exported
// JSON strings are independent copies and outlive the key.
//
// # Export
//
// Export serializes a key as JWK JSON and then sets the top-level "use"
// member. A public export never contains "d", "p", "q", "dp", "dq" or "qi".
//
// # Remote key sets
//
// Resolver.ImportFromURI fetches a JWKS document and hands its "keys" array
// to a Selector. The default SingleKeySelector only resolves a set with
// exactly one key: an empty set fails with ErrNoMatchingKey and a larger set
// with ErrAmbiguousKeySet, because choosing among several keys depends on
// their purpose and is not implemented.
package jwk
