//go:build !(rp2040 || rp2350)

// Command roverdemo runs the drive control loop against simulated pins and
// walks it through a go / stop / bump sequence on the host.
package main

import (
	"context"
	"time"

	"voicedrive-go/bus"
	"voicedrive-go/drivers/bump"
	"voicedrive-go/drivers/motor"
	"voicedrive-go/hal"
	"voicedrive-go/platform"
	"voicedrive-go/services/config"
	"voicedrive-go/services/console"
	"voicedrive-go/services/heartbeat"
	"voicedrive-go/services/rover"
)

func main() {
	ctx := context.Background()
	b := bus.NewBus(16)

	config.NewService("rover").Start(ctx, b.NewConnection("config"))

	consoleSvc := &console.Service{Port: platform.DefaultConsole(), Verbose: true}
	if err := consoleSvc.Start(ctx, b.NewConnection("console")); err != nil {
		panic(err)
	}

	pins := platform.DefaultPinFactory()
	pin := func(n int) hal.GPIOPin {
		p, ok := pins.ByNumber(n)
		if !ok {
			panic("no such pin")
		}
		return p
	}

	valid := pin(4)
	motion := pin(5)
	bumpLeft := pin(12)
	bumpRight := pin(13)

	left, err := motor.New(platform.NewSimPWM(), pin(20))
	if err != nil {
		panic(err)
	}
	right, err := motor.New(platform.NewSimPWM(), pin(21))
	if err != nil {
		panic(err)
	}
	bumps, err := bump.New(bumpLeft, bumpRight)
	if err != nil {
		panic(err)
	}

	drive, err := rover.New(rover.Pins{
		TransmissionValid: valid,
		MotionControl:     motion,
		Status:            pin(10),
	}, left, right, bumps)
	if err != nil {
		panic(err)
	}
	if err := drive.Start(ctx, b.NewConnection("rover")); err != nil {
		panic(err)
	}

	hb := &heartbeat.Service{Red: pin(16), Green: pin(17), Blue: pin(18)}
	if err := hb.Start(ctx, b.NewConnection("heartbeat")); err != nil {
		panic(err)
	}

	// Bump pins are active low; idle is released.
	bumpLeft.Set(true)
	bumpRight.Set(true)

	step := func(d time.Duration, f func()) {
		f()
		time.Sleep(d)
	}

	// Walk through the command sequence a radio link would produce.
	step(300*time.Millisecond, func() {}) // idle, no valid command
	step(500*time.Millisecond, func() {  // GO
		motion.Set(false)
		valid.Set(true)
	})
	step(400*time.Millisecond, func() { bumpLeft.Set(false) }) // obstacle
	step(400*time.Millisecond, func() { bumpLeft.Set(true) })  // released
	step(500*time.Millisecond, func() { motion.Set(true) })    // STOP
	step(300*time.Millisecond, func() { valid.Set(false) })    // link drops

	println("roverdemo done; left duty", left.Duty(), "right duty", right.Duty())
}
