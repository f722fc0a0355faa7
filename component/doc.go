// Package component defines the lifecycle contract shared by the HTTP
// adapter and the testimonial feed, and a registry that starts them in
// order and stops them in reverse.
package component
