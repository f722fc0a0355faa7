// Package sampledata generates deterministic sample testimonials for
// development, fixtures and the sample fallback of the feed.
package sampledata

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/synapseiq/site/testimonial"
)

const (
	dateLayout   = "2006-01-02"
	maxDaysAgo   = 730
	imageCount   = 10
	imageChance  = 0.7
	featureRatio = 0.2

	// FeaturedSeed is the seed used by Featured.
	FeaturedSeed uint64 = 2024
)

// Generate returns n testimonials with ids 1..n. The same seed and now
// always produce the same records. Dates fall within the two years before
// now. The result is never nil, so it encodes as a JSON array.
func Generate(n int, seed uint64, now time.Time) []testimonial.Record {
	if n <= 0 {
		return []testimonial.Record{}
	}
	g := newGenerator(seed, now)
	out := make([]testimonial.Record, n)
	for i := range out {
		out[i] = g.record(i + 1)
		out[i].Featured = g.rng.Float64() < featureRatio
	}
	return out
}

// Featured returns n featured testimonials with ids 1..n.
func Featured(n int) []testimonial.Record {
	if n <= 0 {
		return []testimonial.Record{}
	}
	g := newGenerator(FeaturedSeed, time.Now())
	out := make([]testimonial.Record, n)
	for i := range out {
		out[i] = g.record(i + 1)
		out[i].Featured = true
	}
	return out
}

type generator struct {
	rng *rand.Rand
	now time.Time
}

func newGenerator(seed uint64, now time.Time) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, seed^0x5eed)), now: now}
}

func (g *generator) record(id int) testimonial.Record {
	r := testimonial.Record{
		ID:       id,
		Name:     g.pick(firstNames) + " " + g.pick(lastNames),
		Company:  g.pick(companies),
		Position: g.pick(positions),
		Rating:   4 + g.rng.IntN(2),
		Content:  g.content(),
		Date:     g.now.AddDate(0, 0, -(1 + g.rng.IntN(maxDaysAgo))).Format(dateLayout),
	}
	if g.rng.Float64() < imageChance {
		r.Image = fmt.Sprintf("/static/images/testimonials/person_%d.jpg", 1+g.rng.IntN(imageCount))
	}
	return r
}

func (g *generator) content() string {
	return strings.NewReplacer(
		"{department}", g.pick(departments),
		"{service}", g.pick(services),
		"{percentage}", strconv.Itoa(20+g.rng.IntN(76)),
		"{metric}", g.pick(metrics),
		"{timeframe}", g.pick(timeframes),
		"{country}", g.pick(countries),
		"{industry}", g.pick(industries),
	).Replace(g.pick(templates))
}

func (g *generator) pick(list []string) string {
	return list[g.rng.IntN(len(list))]
}
