// Package transport provides the HTTPS client used to fetch remote JSON Web
// Key Sets. Requests are retried with backoff and trust is anchored at a
// caller-supplied certificate file or directory.
package transport
