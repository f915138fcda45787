package engine_test

import (
	"testing"

	"github.com/warp/utilization-engine/engine"
)

func TestNormalize_CanonicalAndSynonyms(t *testing.T) {
	n := engine.NewNormalizer(nil)

	cases := []struct {
		raw  string
		want engine.Category
	}{
		{"office", engine.CategoryOffice},
		{"Office", engine.CategoryOffice},
		{"  OFFICE  ", engine.CategoryOffice},
		{"in_the_office", engine.CategoryOffice},
		{"WFH", engine.CategoryWorkFromHome},
		{"work-from-home", engine.CategoryWorkFromHome},
		{"Work   From  Home", engine.CategoryWorkFromHome},
		{"remote", engine.CategoryWorkFromHome},
		{"PTO", engine.CategoryVacation},
		{"annual-leave", engine.CategoryVacation},
		{"Sick Day", engine.CategorySick},
		{"field", engine.CategoryField},
		{"on-site", engine.CategoryField},
		{"vacation", engine.CategoryVacation},
		// Unknown labels pass through normalized, as new ad-hoc categories.
		{"Jury_Duty", engine.Category("jury duty")},
		{"TRAINING", engine.Category("training")},
		// Empty labels collapse to unknown rather than an empty category.
		{"", engine.CategoryUnknown},
		{"   ", engine.CategoryUnknown},
	}

	for _, tc := range cases {
		if got := n.Normalize(tc.raw); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalize_ConfigOverridesExtendTheTable(t *testing.T) {
	n := engine.NewNormalizer(map[string]string{
		"Client_Site": "field",
		"teleworking": "Work From Home",
	})

	if got := n.Normalize("client site"); got != engine.CategoryField {
		t.Errorf("override lookup failed: got %q", got)
	}
	if got := n.Normalize("Teleworking"); got != engine.CategoryWorkFromHome {
		t.Errorf("override value not normalized: got %q", got)
	}
	// Defaults still apply alongside overrides.
	if got := n.Normalize("wfh"); got != engine.CategoryWorkFromHome {
		t.Errorf("default synonym lost: got %q", got)
	}
}
