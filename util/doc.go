// Package util provides small generic helpers shared by the feed, the
// catalog view and the CLI: slice filtering, defaults and input
// sanitization.
package util
