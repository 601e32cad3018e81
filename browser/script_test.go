package browser

import (
	"fmt"
	"strings"
	"testing"
)

func TestDrainScriptQuotesEntryType(t *testing.T) {
	s := fmt.Sprintf(drainScript, "layout-shift")
	if !strings.Contains(s, `("layout-shift")`) {
		t.Errorf("drain script missing quoted entry type:\n%s", s)
	}
}

func TestStatsScriptCountsOnlyAbsentAlt(t *testing.T) {
	if !strings.Contains(statsScript, "img:not([alt])") {
		t.Error("stats script should select images with no alt attribute")
	}
	// alt="" is deliberate decorative markup, not a missing attribute.
	if strings.Contains(statsScript, "alt.trim") || strings.Contains(statsScript, "getAttribute('alt')") {
		t.Error("stats script must not inspect alt values, only attribute presence")
	}
}
