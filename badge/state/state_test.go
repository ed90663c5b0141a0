package state

import "testing"

func TestModeCycle(t *testing.T) {
	m := ModeLife
	want := []Mode{ModePoison, ModeExp, ModeLife}
	for i, w := range want {
		m = m.Next()
		if m != w {
			t.Fatalf("advance %d: expected %s, got %s", i+1, w, m)
		}
	}

	for _, start := range Modes {
		m := start
		for i := 0; i < len(Modes); i++ {
			m = m.Next()
		}
		if m != start {
			t.Fatalf("expected %d advances from %s to return, got %s", len(Modes), start, m)
		}
	}
}

func TestModeNextUnknown(t *testing.T) {
	if got := Mode(42).Next(); got != ModePoison {
		t.Fatalf("expected unknown mode to advance like the first, got %s", got)
	}
}

func TestDefaults(t *testing.T) {
	c := Defaults()
	if c.Mode != ModeLife || c.Life != 40 || c.Poison != 0 || c.Exp != 0 || c.Battery != -1 {
		t.Fatalf("unexpected defaults: %s", c)
	}
}

func TestDiffBeforeFirstFlush(t *testing.T) {
	c := Defaults()
	d := NewDiff(&c)
	c.Life = 12
	c.Mode = ModeExp
	for _, f := range Fields {
		if d.Changed(f) {
			t.Fatalf("expected %s unchanged before first flush", f)
		}
	}
	if _, ok := d.Snapshot(); ok {
		t.Fatal("expected no snapshot before first flush")
	}
}

func TestDiffSingleField(t *testing.T) {
	c := Defaults()
	d := NewDiff(&c)
	d.FlushAll()

	for _, f := range Fields {
		if d.Changed(f) {
			t.Fatalf("expected %s unchanged after flush", f)
		}
	}

	c.Poison++
	for _, f := range Fields {
		if got, want := d.Changed(f), f == FieldPoison; got != want {
			t.Fatalf("field %s: expected changed=%v, got %v", f, want, got)
		}
	}
}

func TestDiffPerFieldFlush(t *testing.T) {
	c := Defaults()
	d := NewDiff(&c)
	d.FlushAll()

	c.Life--
	c.Exp += 2
	dirty := d.Dirty()
	if len(dirty) != 2 || dirty[0] != FieldLife || dirty[1] != FieldExp {
		t.Fatalf("expected [life exp] dirty, got %v", dirty)
	}

	d.Flush(FieldLife)
	if d.Changed(FieldLife) {
		t.Fatal("expected life flushed")
	}
	if !d.Changed(FieldExp) {
		t.Fatal("expected exp still pending after flushing life only")
	}
}

func TestDiffSnapshotIsACopy(t *testing.T) {
	c := Defaults()
	d := NewDiff(&c)
	d.FlushAll()
	before, _ := d.Snapshot()

	d.Flush(FieldLife)
	c.Life = 1
	after, _ := d.Snapshot()
	if before.Life != 40 || after.Life != 40 {
		t.Fatalf("expected snapshots to keep life=40, got %d and %d", before.Life, after.Life)
	}
}

func TestFirstFieldFlushCapturesAll(t *testing.T) {
	c := Defaults()
	d := NewDiff(&c)
	c.Exp = 3
	d.Flush(FieldLife)
	snap, ok := d.Snapshot()
	if !ok || snap != c {
		t.Fatalf("expected first flush to capture %s, got %s (ok=%v)", c, snap, ok)
	}
}

func TestActiveFollowsMode(t *testing.T) {
	c := Counters{Life: 12, Poison: 7, Exp: 3}
	for _, tt := range []struct {
		mode Mode
		want int
	}{{ModeLife, 12}, {ModePoison, 7}, {ModeExp, 3}} {
		c.Mode = tt.mode
		if v, ok := c.Active(); !ok || v != tt.want {
			t.Fatalf("%s: expected %d, got %d, %v", tt.mode, tt.want, v, ok)
		}
	}
	c.Mode = Mode(42)
	if _, ok := c.Active(); ok {
		t.Fatalf("expected no active counter for an unknown mode")
	}
}
