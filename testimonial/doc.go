// Package testimonial holds the testimonial data model and the boundary to
// the testimonials API.
//
// ParsePage turns a raw response body into a Page without ever failing:
// missing or wrong-typed fields fall back to zero values and the page is
// flagged Malformed. HTTPSource fetches pages through an httpclient.Adapter
// and converts transport failures into *errors.AppError values. Admin sends
// creates, updates, deletes and featured toggles over the same adapter after
// validating the record locally.
//
// Image paths are resolved against the API base with ResolveImageURL; an
// ImageSource swaps to the fallback asset at most once when the image fails
// to load.
package testimonial
