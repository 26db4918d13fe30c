package state

// Classifier folds link telemetry samples into state transitions.
//
// It lives outside the decision path: whoever gathers latency and error-rate
// samples feeds them to Observe, and the resulting state lands in the Holder
// for subsequent decisions to read. Observe performs no I/O.
type Classifier struct {
	holder *Holder

	// LatencyThresholdMS marks a sample as unhealthy when exceeded.
	LatencyThresholdMS uint32

	// ErrorRateThreshold marks a sample as unhealthy when exceeded.
	ErrorRateThreshold float64
}

// NewClassifier creates a classifier with the default thresholds
// (latency > 120ms or error rate > 5%).
func NewClassifier(holder *Holder) *Classifier {
	return &Classifier{
		holder:             holder,
		LatencyThresholdMS: 120,
		ErrorRateThreshold: 0.05,
	}
}

// Observe applies one telemetry sample and returns the resulting state.
// Nil sample fields are treated as healthy readings.
//
// The transition table degrades one step at a time on unhealthy samples
// (NORMAL→DEGRADED→FAILOVER) and walks back through RECOVERY on healthy
// ones; RECOVERY falls back to DEGRADED if trouble returns before the link
// settles.
func (c *Classifier) Observe(latencyMS *uint32, errorRate *float64) State {
	unhealthy := false
	if latencyMS != nil && *latencyMS > c.LatencyThresholdMS {
		unhealthy = true
	}
	if errorRate != nil && *errorRate > c.ErrorRateThreshold {
		unhealthy = true
	}

	current := c.holder.Current()
	var next State
	switch current {
	case Normal:
		if unhealthy {
			next = Degraded
		} else {
			next = Normal
		}
	case Degraded:
		if unhealthy {
			next = Failover
		} else {
			next = Recovery
		}
	case Failover:
		if unhealthy {
			next = Failover
		} else {
			next = Recovery
		}
	case Recovery:
		if unhealthy {
			next = Degraded
		} else {
			next = Normal
		}
	default:
		next = Normal
	}

	c.holder.SetState(next)
	return next
}
