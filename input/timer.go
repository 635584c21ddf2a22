package input

import "time"

const samples = 32

// Timer keeps a rolling average of the last 32 durations added to it.
type Timer struct {
	times [samples]time.Duration
	index int
	n     int
}

func (t *Timer) Add(dt time.Duration) {
	t.times[t.index] = dt
	t.index = (t.index + 1) & (samples - 1)
	if t.n < samples {
		t.n++
	}
}

func (t *Timer) Average() time.Duration {
	if t.n == 0 {
		return 0
	}
	var avg time.Duration
	for _, dt := range t.times[:t.n] {
		avg += dt
	}
	return avg / time.Duration(t.n)
}

// AveragePerSecond returns how many operations of average duration fit in a
// second. It returns 0 when nothing has been timed yet.
func (t *Timer) AveragePerSecond() float64 {
	avg := t.Average()
	if avg == 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
