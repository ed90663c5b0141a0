package hal

import (
	"fmt"
	"sync"
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOEdge selects which transitions fire a pin interrupt.
type GPIOEdge uint8

const (
	GPIOEdgeNone GPIOEdge = iota
	GPIOEdgeRising
	GPIOEdgeFalling
	GPIOEdgeBoth
)

// virtualPin is an input pin whose level is driven by the host (keyboard,
// replay script) instead of a wire. Level changes fire the configured edge
// interrupt synchronously, like a latched hardware IRQ would.
type virtualPin struct {
	mu    sync.Mutex
	name  string
	pull  GPIOPull
	edge  GPIOEdge
	level bool
	isr   func()
}

func newVirtualPin(name string) *virtualPin {
	return &virtualPin{name: name}
}

func (p *virtualPin) Name() string { return p.name }

func (p *virtualPin) Configure(pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch pull {
	case GPIOPullNone, GPIOPullUp, GPIOPullDown:
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", p.name)
	}
	p.pull = pull
	p.level = pull == GPIOPullUp
	return nil
}

func (p *virtualPin) SetInterrupt(edge GPIOEdge, isr func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if edge > GPIOEdgeBoth {
		return fmt.Errorf("gpio: pin %s: invalid edge", p.name)
	}
	if edge != GPIOEdgeNone && isr == nil {
		return fmt.Errorf("gpio: pin %s: nil handler", p.name)
	}
	p.edge = edge
	p.isr = isr
	return nil
}

func (p *virtualPin) Read() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Drive sets the pin level and fires the interrupt if the transition matches.
// The handler runs after the lock is released.
func (p *virtualPin) Drive(level bool) {
	p.mu.Lock()
	prev := p.level
	p.level = level
	isr := p.isr
	fire := false
	switch {
	case prev == level:
	case p.edge == GPIOEdgeBoth:
		fire = true
	case p.edge == GPIOEdgeRising && level:
		fire = true
	case p.edge == GPIOEdgeFalling && !level:
		fire = true
	}
	p.mu.Unlock()

	if fire && isr != nil {
		isr()
	}
}

// Pulse drives one active-high press: chatter extra bounces, then release.
func (p *virtualPin) Pulse(chatter int) {
	p.Drive(true)
	for i := 0; i < chatter; i++ {
		p.Drive(false)
		p.Drive(true)
	}
	p.Drive(false)
}

// pinButtons maps the five front buttons onto virtual pins wired like the
// badge: pulled down, active high, rising-edge interrupt.
type pinButtons struct {
	pins    [ButtonCount]*virtualPin
	chatter int
}

func newPinButtons(chatter int) *pinButtons {
	b := &pinButtons{chatter: chatter}
	for i := range b.pins {
		p := newVirtualPin(Button(i).String())
		_ = p.Configure(GPIOPullDown)
		b.pins[i] = p
	}
	return b
}

func (b *pinButtons) SetHandler(h func(Button)) error {
	for i, p := range b.pins {
		btn := Button(i)
		var isr func()
		edge := GPIOEdgeNone
		if h != nil {
			isr = func() { h(btn) }
			edge = GPIOEdgeRising
		}
		if err := p.SetInterrupt(edge, isr); err != nil {
			return err
		}
	}
	return nil
}

// Press simulates one physical press of btn.
func (b *pinButtons) Press(btn Button) {
	if btn >= ButtonCount {
		return
	}
	b.pins[btn].Pulse(b.chatter)
}
