// Package loop is the badge's single cooperative main loop.
//
// Button edges arrive asynchronously and are only debounced and queued. Each
// Step applies queued presses to the counters it owns, then, once the
// buttons have been idle for the quiet period, samples the battery and lets
// the render scheduler push changes to the panel.
package loop

import (
	"tally/badge/battery"
	"tally/badge/debounce"
	"tally/badge/input"
	"tally/badge/logger"
	"tally/badge/render"
	"tally/badge/state"
	"tally/hal"
)

// Loop owns the counters and everything that reads or writes them.
type Loop struct {
	h   hal.HAL
	cfg Config

	counters state.Counters
	diff     *state.Diff
	sched    *render.Scheduler
	sampler  *battery.Sampler
	in       *input.Queue
	log      *logger.Queue

	lastSample int64
	sampled    bool
	steps      uint64
}

// New builds a loop on h and attaches it to the buttons.
func New(h hal.HAL, cfg Config) (*Loop, error) {
	cfg = cfg.withDefaults()
	l := &Loop{
		h:        h,
		cfg:      cfg,
		counters: state.Defaults(),
		sched:    render.NewScheduler(cfg.Profile.Threshold()),
		sampler:  battery.NewSampler(h.Analog(), cfg.Battery),
		in:       input.NewQueue(h.Clock(), &debounce.Filter{}, cfg.DebounceWindow, cfg.QueueDepth),
		log:      logger.New(cfg.LogDepth, cfg.Debug),
	}
	l.diff = state.NewDiff(&l.counters)
	if err := l.in.Attach(h.Buttons()); err != nil {
		return nil, err
	}
	l.log.Logf("tally: profile=%s threshold=%d debounce=%s quiet=%s",
		cfg.Profile, l.sched.Threshold(), cfg.DebounceWindow, cfg.QuietPeriod)
	return l, nil
}

// State returns a copy of the live counters.
func (l *Loop) State() state.Counters { return l.counters }

// Staleness reports the partial refreshes since the last full one.
func (l *Loop) Staleness() int { return l.sched.Staleness() }

// Logf queues a line for the next drain.
func (l *Loop) Logf(format string, args ...any) { l.log.Logf(format, args...) }

// Close detaches the button handler and flushes pending log lines.
func (l *Loop) Close() error {
	err := l.h.Buttons().SetHandler(nil)
	l.log.Drain(l.h.Logger())
	return err
}

// Step runs one loop iteration. Panel errors are logged and retried on a
// later step; Step itself only fails on programming errors.
func (l *Loop) Step() error {
	l.steps++
	l.applyInput()

	now := l.h.Clock().NowMillis()
	if l.in.Filter().Quiet(now, l.cfg.QuietPeriod) {
		l.sampleBattery(now)
		l.refresh()
	}

	l.log.Drain(l.h.Logger())
	return nil
}

func (l *Loop) applyInput() {
	for {
		ev, ok := l.in.Poll()
		if !ok {
			break
		}
		act := input.ActionFor(ev.Button)
		if act == input.ActionNone {
			l.log.Debugf("button %s: reserved", ev.Button)
			continue
		}
		input.Apply(&l.counters, act)
		if v, ok := l.counters.Active(); ok {
			l.log.Logf("%s: %s=%d", act, l.counters.Mode, v)
		} else {
			l.log.Logf("%s: %s", act, l.counters)
		}
		l.log.Debugf("state: %s", l.counters)
	}
	if rejected, dropped := l.in.Stats(); rejected > 0 || dropped > 0 {
		l.log.Debugf("input: %d bounces rejected, %d presses dropped", rejected, dropped)
	}
}

func (l *Loop) sampleBattery(now int64) {
	if l.sampled && now-l.lastSample < l.cfg.SampleInterval.Milliseconds() {
		return
	}
	l.sampled = true
	l.lastSample = now

	prev := l.counters.Battery
	level, volts := l.sampler.Sample(prev)
	l.counters.Battery = level
	if level != prev {
		l.log.Logf("battery: %.2fV level %d -> %d", volts, prev, level)
	} else {
		l.log.Debugf("battery: %.2fV level %d", volts, level)
	}
}

func (l *Loop) refresh() {
	led := l.h.LED()
	led.High()
	out, err := l.sched.Tick(l.h.Surface(), l.diff)
	led.Low()
	if err != nil {
		l.log.Logf("render: %v", err)
	}
	if out != render.Quiet {
		l.log.Debugf("render: %s refresh, staleness %d", out, l.sched.Staleness())
	}
}
