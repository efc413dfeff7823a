// Package gallery implements the marketplace query client and the archive
// fetcher. It issues a single extension-query POST against the public
// gallery endpoint, resolves the latest version's VSIX download URL, and
// downloads the package to local storage. There is no retry or backoff; a
// network failure surfaces immediately to the caller.
package gallery
