package sampledata

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/synapseiq/site/testimonial"
)

var refTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(50, 7, refTime)
	b := Generate(50, 7, refTime)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different records")
	}
	c := Generate(50, 8, refTime)
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical records")
	}
}

func TestGenerate_RecordsAreValid(t *testing.T) {
	records := Generate(200, 42, refTime)
	if len(records) != 200 {
		t.Fatalf("expected 200 records, got %d", len(records))
	}

	oldest := refTime.AddDate(0, 0, -maxDaysAgo).Format(dateLayout)
	newest := refTime.AddDate(0, 0, -1).Format(dateLayout)
	var featured, withImage int
	for i, r := range records {
		if err := r.Validate(); err != nil {
			t.Fatalf("record %d invalid: %v", i, err)
		}
		if r.ID != i+1 {
			t.Errorf("record %d has id %d", i, r.ID)
		}
		if r.Rating < 4 || r.Rating > 5 {
			t.Errorf("record %d rating %d", i, r.Rating)
		}
		if r.Date < oldest || r.Date > newest {
			t.Errorf("record %d date %s outside [%s, %s]", i, r.Date, oldest, newest)
		}
		if strings.Contains(r.Content, "{") {
			t.Errorf("record %d has unfilled template: %s", i, r.Content)
		}
		if r.Image != "" {
			withImage++
			if !strings.HasPrefix(r.Image, "/static/images/testimonials/person_") {
				t.Errorf("record %d unexpected image %s", i, r.Image)
			}
		}
		if r.Featured {
			featured++
		}
	}
	if featured == 0 || featured > 100 {
		t.Errorf("unexpected featured share %d/200", featured)
	}
	if withImage < 100 || withImage == 200 {
		t.Errorf("unexpected image share %d/200", withImage)
	}
}

func TestGenerate_NonPositive(t *testing.T) {
	for _, records := range [][]testimonial.Record{Generate(0, 1, refTime), Featured(-1)} {
		if records == nil || len(records) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", records)
		}
	}
	out, err := json.Marshal(Generate(0, 1, refTime))
	if err != nil || string(out) != "[]" {
		t.Errorf("expected [] when encoded, got %s (%v)", out, err)
	}
}

func TestFeatured(t *testing.T) {
	records := Featured(6)
	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}
	for i, r := range records {
		if !r.Featured || r.ID != i+1 {
			t.Errorf("unexpected record %+v", r)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("record %d invalid: %v", i, err)
		}
	}
}
