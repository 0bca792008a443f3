package synth

// Quote jitter draws. The upstreams only give daily closes, so intraday
// change and options flow are sampled rather than observed.

// QuoteChange draws a daily change (currency units) and change percent
func (s *Synthesizer) QuoteChange() (change, changePercent float64) {
	change = round(s.src.Uniform(-5, 5), 2)
	changePercent = round(s.src.Uniform(-0.08, 0.08), 4)
	return change, changePercent
}

// PutCallRatio draws a put/call ratio in [0.8, 1.2)
func (s *Synthesizer) PutCallRatio() float64 {
	return round(0.8+0.4*s.src.Float64(), 2)
}
