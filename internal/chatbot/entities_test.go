package chatbot

import "testing"

func TestExtract_Table(t *testing.T) {
	e := NewEntityExtractor()

	tests := []struct {
		name    string
		message string
		want    map[string]string
	}{
		{
			"nothing to extract",
			"hello there",
			map[string]string{},
		},
		{
			"company size and segment",
			"We're an enterprise running filling stations across the country",
			map[string]string{EntityCompanySize: "large", EntitySegment: "downstream"},
		},
		{
			"region and urgency",
			"We operate depots in Nigeria and need a system urgently",
			map[string]string{EntitySegment: "midstream", EntityRegion: "west_africa", EntityUrgency: "high"},
		},
		{
			"upstream segment",
			"We manage drilling operations in Kenya",
			map[string]string{EntitySegment: "upstream", EntityRegion: "east_africa"},
		},
		{
			"case insensitive",
			"ENTERPRISE company in DUBAI",
			map[string]string{EntityCompanySize: "large", EntityRegion: "middle_east"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.message, IntentGeneralInquiry)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.message, got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Extract(%q)[%s] = %q, want %q", tt.message, k, got[k], v)
				}
			}
		})
	}
}

func TestExtract_FirstCandidateWinsWithinFamily(t *testing.T) {
	e := NewEntityExtractor()

	// Both "upstream" (listed first) and "pipeline" keywords appear; the
	// earlier candidate takes the family slot.
	got := e.Extract("upstream production with a pipeline network", IntentProductInquiry)
	if got[EntitySegment] != "upstream" {
		t.Errorf("expected first candidate to win, got %q", got[EntitySegment])
	}
}
