package testimonial

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Query selects a page of testimonials.
type Query struct {
	FeaturedOnly bool
	Limit        int
	Offset       int
}

// Params renders the query as URL parameters.
func (q Query) Params() map[string]string {
	return map[string]string{
		"featured_only": strconv.FormatBool(q.FeaturedOnly),
		"limit":         strconv.Itoa(q.Limit),
		"offset":        strconv.Itoa(q.Offset),
	}
}

// Page is one response from the testimonials endpoint.
type Page struct {
	Records    []Record
	TotalCount int
	HasMore    bool
	// Malformed is set when the envelope was not the expected shape and
	// defaults were applied.
	Malformed bool
	// Skipped counts array elements dropped because they were not objects.
	Skipped int
}

// ParsePage decodes a response body. It never fails: an envelope without a
// "testimonials" array yields zero records and Malformed. A bare top-level
// array is accepted as the legacy shape, with TotalCount set to its length
// and HasMore false. Metadata is the only source for TotalCount and HasMore.
func ParsePage(body []byte) Page {
	if !gjson.ValidBytes(body) {
		return Page{Malformed: true}
	}
	root := gjson.ParseBytes(body)

	if root.IsArray() {
		var p Page
		p.Records, p.Skipped = parseRecords(root)
		p.TotalCount = len(p.Records)
		return p
	}
	if !root.IsObject() {
		return Page{Malformed: true}
	}

	p := Page{
		TotalCount: int(root.Get("metadata.total_count").Int()),
		HasMore:    root.Get("metadata.has_more").Bool(),
	}
	list := root.Get("testimonials")
	if !list.IsArray() {
		p.Malformed = true
		return p
	}
	p.Records, p.Skipped = parseRecords(list)
	return p
}

func parseRecords(list gjson.Result) ([]Record, int) {
	elems := list.Array()
	records := make([]Record, 0, len(elems))
	skipped := 0
	for _, e := range elems {
		if !e.IsObject() {
			skipped++
			continue
		}
		records = append(records, parseRecord(e))
	}
	return records, skipped
}

// parseRecord reads one object leniently. Ratings stored as REAL are
// truncated; featured accepts booleans, 0/1 and their string forms.
func parseRecord(obj gjson.Result) Record {
	return Record{
		ID:       int(obj.Get("id").Int()),
		Name:     obj.Get("name").String(),
		Company:  obj.Get("company").String(),
		Position: obj.Get("position").String(),
		Rating:   int(obj.Get("rating").Float()),
		Content:  obj.Get("content").String(),
		Image:    obj.Get("image").String(),
		Featured: obj.Get("featured").Bool(),
		Date:     obj.Get("date").String(),
	}
}
