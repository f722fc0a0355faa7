// Package feed implements the testimonial carousel feed: an append-only list
// of featured testimonials loaded page by page, with circular navigation
// over what has been loaded so far.
//
// A Feed is safe for concurrent use. Fetches run on the caller's goroutine
// without holding the feed's lock; every response is checked against the
// generation captured when its request started, so a response that was
// overtaken by a newer InitialLoad or by Close is dropped.
//
//	f := feed.New(src, feed.Options{})
//	defer f.Close()
//	if err := f.InitialLoad(ctx); err != nil { ... }
//	f.Next()
//	_ = f.LoadMore(ctx)
package feed
