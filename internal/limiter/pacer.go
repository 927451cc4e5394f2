package limiter

import "time"

// Pacer enforces a fixed pause between successive fetches against the scraped
// source. This is a courtesy rate limit, not a performance knob: languages are
// synced strictly one after another and the pause bounds the request rate.
type Pacer struct {
	interval time.Duration
	sleep    func(time.Duration)
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		interval: interval,
		sleep:    time.Sleep,
	}
}

// NewPacerWithSleep injects the sleep function so tests run without waiting.
func NewPacerWithSleep(interval time.Duration, sleep func(time.Duration)) *Pacer {
	return &Pacer{
		interval: interval,
		sleep:    sleep,
	}
}

// Wait blocks for the configured interval.
func (p *Pacer) Wait() {
	if p.interval > 0 {
		p.sleep(p.interval)
	}
}
