package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAreRegisteredAndIncrementable(t *testing.T) {
	before := testutil.ToFloat64(RoundsStarted)
	RoundsStarted.Inc()
	after := testutil.ToFloat64(RoundsStarted)
	if after != before+1 {
		t.Errorf("RoundsStarted after Inc = %v, want %v", after, before+1)
	}
}

func TestPushResolutionsAcceptsActionOutcomeLabels(t *testing.T) {
	before := testutil.ToFloat64(PushResolutions.WithLabelValues("drill", "Success"))
	PushResolutions.WithLabelValues("drill", "Success").Inc()
	after := testutil.ToFloat64(PushResolutions.WithLabelValues("drill", "Success"))
	if after != before+1 {
		t.Errorf("PushResolutions{drill,Success} after Inc = %v, want %v", after, before+1)
	}
}

func TestActiveBotsGaugeSettable(t *testing.T) {
	ActiveBots.Set(3)
	if got := testutil.ToFloat64(ActiveBots); got != 3 {
		t.Errorf("ActiveBots = %v, want 3", got)
	}
}
