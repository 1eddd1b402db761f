package ui

import (
	"strings"
	"testing"
	"time"
)

func TestPageStateStatusExpiry(t *testing.T) {
	now := time.Date(2015, 5, 30, 12, 0, 0, 0, time.UTC)
	p := NewPageState(DefaultLayout())
	p.now = func() time.Time { return now }

	tests := []struct {
		name    string
		set     func()
		advance time.Duration
		want    string
	}{
		{"notify visible before ttl", func() { p.Notify("Opened photo 1", time.Second) }, 500 * time.Millisecond, "Opened photo 1"},
		{"notify gone after ttl", func() { p.Notify("Opened photo 1", time.Second) }, 2 * time.Second, ""},
		{"alert gone after ttl", func() { p.Alert("untrusted", time.Second) }, 2 * time.Second, ""},
		{"no ttl never expires", func() { p.Alert("sticky", 0) }, time.Hour, "sticky"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			now = now.Add(tt.advance)
			p.ExpireStatus()

			got := p.StatusLine()
			if tt.want == "" && got != "" {
				t.Errorf("StatusLine() = %q, want empty", got)
			}
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("StatusLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPageStateResize(t *testing.T) {
	p := NewPageState(DefaultLayout())

	if !p.Resize(120, 40) {
		t.Fatal("new size should change the layout")
	}
	if p.Layout.ViewportWidth != 120 || p.Layout.InnerWidth != 118 {
		t.Errorf("layout = %+v", p.Layout)
	}
	if p.Resize(120, 40) {
		t.Error("same size should report no change")
	}
	// both widths clamp to the maximum
	p.Resize(500, 40)
	if p.Resize(600, 40) {
		t.Error("clamped sizes should compare equal")
	}
}
