package rover

import (
	"testing"
	"time"

	"voicedrive-go/bus"
	"voicedrive-go/drivers/bump"
	"voicedrive-go/drivers/motor"
	"voicedrive-go/platform"
)

type rig struct {
	svc        *Service
	valid      *platform.SimPin
	motion     *platform.SimPin
	status     *platform.SimPin
	leftPWM    *platform.SimPWM
	rightPWM   *platform.SimPWM
	bumpSwitch *platform.SimPin
	conn       *bus.Connection
	stateSub   *bus.Subscription
}

func newRig(t *testing.T) *rig {
	t.Helper()

	valid := platform.NewSimPin(4)
	motion := platform.NewSimPin(5)
	status := platform.NewSimPin(10)
	leftPWM, rightPWM := platform.NewSimPWM(), platform.NewSimPWM()

	left, err := motor.New(leftPWM, platform.NewSimPin(20))
	if err != nil {
		t.Fatal(err)
	}
	right, err := motor.New(rightPWM, platform.NewSimPin(21))
	if err != nil {
		t.Fatal(err)
	}

	sw := platform.NewSimPin(12)
	bumps, err := bump.New(sw)
	if err != nil {
		t.Fatal(err)
	}

	svc, err := New(Pins{TransmissionValid: valid, MotionControl: motion, Status: status}, left, right, bumps)
	if err != nil {
		t.Fatal(err)
	}

	b := bus.NewBus(8)
	conn := b.NewConnection("rover")
	return &rig{
		svc: svc, valid: valid, motion: motion, status: status,
		leftPWM: leftPWM, rightPWM: rightPWM, bumpSwitch: sw,
		conn:     conn,
		stateSub: b.NewConnection("test").Subscribe(bus.T("rover", "state")),
	}
}

func (r *rig) expectState(t *testing.T, want string) {
	t.Helper()
	select {
	case m := <-r.stateSub.Channel():
		if m.Payload.(string) != want {
			t.Fatalf("state = %v, want %q", m.Payload, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("no state message, want %q", want)
	}
}

func TestValidAndGoStartsMotors(t *testing.T) {
	r := newRig(t)

	r.valid.Set(true)
	r.motion.Set(false)
	r.svc.step(r.conn)

	if d := r.leftPWM.DutyPercent(); d != defaultGoSpeed {
		t.Errorf("left duty = %d, want %d", d, defaultGoSpeed)
	}
	if d := r.rightPWM.DutyPercent(); d != defaultGoSpeed {
		t.Errorf("right duty = %d, want %d", d, defaultGoSpeed)
	}
	if !r.status.Get() {
		t.Error("status LED should be high while driving")
	}
	r.expectState(t, "go")
}

func TestValidAndStopHaltsMotors(t *testing.T) {
	r := newRig(t)

	r.valid.Set(true)
	r.motion.Set(false)
	r.svc.step(r.conn)
	r.expectState(t, "go")

	r.motion.Set(true)
	r.svc.step(r.conn)

	if d := r.leftPWM.DutyPercent(); d != 0 {
		t.Errorf("left duty = %d, want 0", d)
	}
	if r.status.Get() {
		t.Error("status LED should be low when halted")
	}
	r.expectState(t, "halt")
}

func TestInvalidTransmissionLeavesMotorsAlone(t *testing.T) {
	r := newRig(t)

	r.valid.Set(true)
	r.motion.Set(false)
	r.svc.step(r.conn)
	r.expectState(t, "go")

	// Transmission drops: motors keep their last command.
	r.valid.Set(false)
	r.svc.step(r.conn)

	if d := r.leftPWM.DutyPercent(); d != defaultGoSpeed {
		t.Errorf("left duty = %d, want %d (unchanged)", d, defaultGoSpeed)
	}
	r.expectState(t, "idle")
}

func TestBumpPausesUntilReleased(t *testing.T) {
	r := newRig(t)

	r.valid.Set(true)
	r.motion.Set(false)
	r.svc.step(r.conn)

	// Press: switches are active low.
	r.bumpSwitch.Set(false)
	r.svc.step(r.conn)
	if d := r.leftPWM.DutyPercent(); d != 0 {
		t.Errorf("duty while bumped = %d, want 0", d)
	}

	// Still pressed: stays paused even though the loop keeps commanding go.
	r.svc.step(r.conn)
	if d := r.leftPWM.DutyPercent(); d != 0 {
		t.Errorf("duty while still bumped = %d, want 0", d)
	}

	// Release: motors restart at the commanded speed.
	r.bumpSwitch.Set(true)
	r.svc.step(r.conn)
	if d := r.leftPWM.DutyPercent(); d != defaultGoSpeed {
		t.Errorf("duty after release = %d, want %d", d, defaultGoSpeed)
	}
}

func TestStatePublishedOnlyOnChange(t *testing.T) {
	r := newRig(t)

	r.valid.Set(true)
	r.motion.Set(true)
	r.svc.step(r.conn)
	r.expectState(t, "halt")

	r.svc.step(r.conn)
	select {
	case m := <-r.stateSub.Channel():
		t.Fatalf("unexpected repeat state publish: %v", m.Payload)
	case <-time.After(30 * time.Millisecond):
	}
}
