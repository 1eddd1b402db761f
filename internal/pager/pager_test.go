package pager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/thesavant42/marsphotos/internal/models"
)

// fakeSource serves a fixed number of photos per rover and records calls.
type fakeSource struct {
	total map[string]int
	fail  map[int]error
	calls []Request
}

func (f *fakeSource) FetchPage(_ context.Context, filter models.SearchFilter, page int) ([]models.PhotoRecord, error) {
	f.calls = append(f.calls, Request{Filter: filter, Page: page})
	if err := f.fail[page]; err != nil {
		return nil, err
	}
	start := (page - 1) * PageSize
	n := min(max(f.total[filter.Rover]-start, 0), PageSize)
	photos := make([]models.PhotoRecord, n)
	for i := range photos {
		photos[i] = models.PhotoRecord{ID: int64(start + i + 1), Rover: models.RoverInfo{Name: filter.Rover}}
	}
	return photos, nil
}

// drain executes requests until none remain.
func drain(t *testing.T, p *Pager, src Source, reqs []Request) {
	t.Helper()
	for len(reqs) > 0 {
		req := reqs[0]
		reqs = append(reqs[1:], p.Resolve(Execute(context.Background(), src, req))...)
	}
}

var validFilter = models.SearchFilter{Rover: "Curiosity", EarthDate: "2015-05-30"}

func TestShortPageSkipsProbe(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 12}}
	p := New(nil)

	drain(t, p, src, p.SetFilter(validFilter))

	if len(src.calls) != 1 {
		t.Fatalf("fetches = %d, want 1", len(src.calls))
	}
	if len(p.Photos) != 12 || p.HasNext || p.Loading || p.CheckingNext {
		t.Errorf("pager = %s loading=%v checking=%v", p, p.Loading, p.CheckingNext)
	}
	if p.CanNext() || p.CanPrev() {
		t.Error("no navigation should be enabled")
	}
}

func TestFullPageProbes(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		hasNext bool
	}{
		{"exactly one page", 25, false},
		{"more pages", 26, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{total: map[string]int{"Curiosity": tt.total}}
			p := New(nil)

			reqs := p.SetFilter(validFilter)
			reqs = p.Resolve(Execute(context.Background(), src, reqs[0]))
			if len(reqs) != 1 || reqs[0].Kind != Probe || reqs[0].Page != 2 {
				t.Fatalf("follow-up = %+v, want probe for page 2", reqs)
			}
			if !p.CheckingNext || p.CanNext() {
				t.Error("next must be disabled while probing")
			}

			drain(t, p, src, reqs)
			if p.HasNext != tt.hasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.hasNext)
			}
			if len(p.Photos) != PageSize {
				t.Errorf("probe result leaked into display: %d photos", len(p.Photos))
			}
		})
	}
}

func TestProbeFailureMeansNoNext(t *testing.T) {
	src := &fakeSource{
		total: map[string]int{"Curiosity": 80},
		fail:  map[int]error{2: errors.New("upstream hiccup")},
	}
	p := New(nil)
	drain(t, p, src, p.SetFilter(validFilter))

	if p.HasNext || p.Err != nil || len(p.Photos) != PageSize {
		t.Errorf("pager = %s err=%v", p, p.Err)
	}
}

func TestPrimaryFailureClearsResults(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 80}}
	p := New(nil)
	drain(t, p, src, p.SetFilter(validFilter))
	if !p.HasNext {
		t.Fatal("expected next page")
	}

	boom := errors.New("network down")
	src.fail = map[int]error{2: boom}
	drain(t, p, src, p.Next())

	if !errors.Is(p.Err, boom) || p.Photos != nil || p.HasNext || p.Page != 2 {
		t.Errorf("pager = %s err=%v", p, p.Err)
	}

	src.fail = nil
	drain(t, p, src, p.Retry())
	if p.Err != nil || len(p.Photos) != PageSize || !p.HasNext {
		t.Errorf("after retry: %s err=%v", p, p.Err)
	}
}

func TestStaleResponseIgnored(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 30, "Spirit": 3}}
	p := New(nil)

	first := p.SetFilter(validFilter)
	second := p.SetFilter(models.SearchFilter{Rover: "Spirit", EarthDate: "2004-01-10"})

	// Spirit resolves first, then the slow Curiosity response lands.
	drain(t, p, src, second)
	if follow := p.Resolve(Execute(context.Background(), src, first[0])); follow != nil {
		t.Errorf("stale response produced follow-up %+v", follow)
	}

	if p.Filter.Rover != "Spirit" || len(p.Photos) != 3 {
		t.Fatalf("display overwritten by stale response: %s", p)
	}
	for _, ph := range p.Photos {
		if ph.Rover.Name != "Spirit" {
			t.Fatalf("found %s photo in Spirit results", ph.Rover.Name)
		}
	}
}

func TestStaleProbeIgnoredAfterPageChange(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 60}}
	p := New(nil)

	probe := p.Resolve(Execute(context.Background(), src, p.SetFilter(validFilter)[0]))
	p.Close()
	p.Resolve(Execute(context.Background(), src, probe[0]))

	if p.HasNext {
		t.Error("probe resolved after Close must not update state")
	}
}

func TestFilterValidation(t *testing.T) {
	tests := []struct {
		name    string
		filter  models.SearchFilter
		wantErr error
	}{
		{"missing date", models.SearchFilter{Rover: "Curiosity"}, models.ErrDateRequired},
		{"unknown rover", models.SearchFilter{Rover: "Zhurong", EarthDate: "2021-05-22"}, models.ErrUnknownRover},
		{"no rover", models.SearchFilter{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(nil)
			reqs := p.SetFilter(tt.filter)
			if len(reqs) != 0 {
				t.Fatalf("invalid filter issued %d requests", len(reqs))
			}
			if !errors.Is(p.Err, tt.wantErr) && !(tt.wantErr == nil && p.Err == nil) {
				t.Errorf("Err = %v, want %v", p.Err, tt.wantErr)
			}
			if p.Loading {
				t.Error("pager left loading")
			}
		})
	}
	if got := models.ErrDateRequired.Error(); got != "Earth date is required." {
		t.Errorf("date message = %q", got)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 100, "Opportunity": 100}}
	p := New(nil)
	drain(t, p, src, p.SetFilter(validFilter))
	drain(t, p, src, p.Next())
	drain(t, p, src, p.Next())
	if p.Page != 3 || !p.CanPrev() {
		t.Fatalf("page = %d, want 3", p.Page)
	}

	reqs := p.SetFilter(models.SearchFilter{Rover: "opportunity", EarthDate: "2010-03-01"})
	if p.Page != 1 || reqs[0].Page != 1 || reqs[0].Filter.Rover != "Opportunity" {
		t.Errorf("filter change: page=%d req=%+v", p.Page, reqs[0])
	}
	if p.CanPrev() || p.CanNext() {
		t.Error("controls must be disabled while loading")
	}
}

func TestNavigationGuards(t *testing.T) {
	p := New(nil)
	if p.Prev() != nil || p.Next() != nil {
		t.Error("idle pager should not navigate")
	}

	src := &fakeSource{total: map[string]int{"Curiosity": 10}}
	drain(t, p, src, p.SetFilter(validFilter))
	if reqs := p.Next(); reqs != nil {
		t.Errorf("Next on last page issued %v", reqs)
	}
}

func TestPendingReissuesInFlight(t *testing.T) {
	src := &fakeSource{total: map[string]int{"Curiosity": 60}}
	p := New(nil)

	reqs := p.SetFilter(validFilter)
	if got := p.Pending(); len(got) != 1 || got[0] != reqs[0] {
		t.Fatalf("Pending() while loading = %+v, want %+v", got, reqs)
	}

	probe := p.Resolve(Execute(context.Background(), src, reqs[0]))
	if got := p.Pending(); len(got) != 1 || got[0] != probe[0] {
		t.Fatalf("Pending() while probing = %+v, want %+v", got, probe)
	}

	// the reissued probe is accepted because it carries the live generation
	drain(t, p, src, p.Pending())
	if !p.HasNext || len(p.Pending()) != 0 {
		t.Errorf("after reissue: hasNext=%v pending=%v", p.HasNext, p.Pending())
	}

	p.Close()
	if p.Pending() != nil {
		t.Error("closed pager has nothing pending")
	}
}

func ExamplePager() {
	src := &fakeSource{total: map[string]int{"Curiosity": 30}}
	p := New(nil)

	reqs := p.SetFilter(models.SearchFilter{Rover: "Curiosity", EarthDate: "2015-05-30"})
	for len(reqs) > 0 {
		resp := Execute(context.Background(), src, reqs[0])
		fmt.Printf("%s page %d: %d photos\n", resp.Request.Kind, resp.Request.Page, len(resp.Photos))
		reqs = append(reqs[1:], p.Resolve(resp)...)
	}
	fmt.Println("has next:", p.HasNext)
	// Output:
	// primary page 1: 25 photos
	// probe page 2: 5 photos
	// has next: true
}
