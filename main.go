package main

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"voicedrive-go/bus"
	"voicedrive-go/classify"
	"voicedrive-go/disposition"
	"voicedrive-go/drivers/i2ssim"
	"voicedrive-go/drivers/tlv320aic3254"
	"voicedrive-go/errcode"
	"voicedrive-go/pipeline"
	"voicedrive-go/platform"
	"voicedrive-go/services/config"
	"voicedrive-go/services/console"
	"voicedrive-go/x/sampring"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot pilot", uuid.NewString())

	ctx := context.Background()
	b := bus.NewBus(16)

	config.NewService("pilot").Start(ctx, b.NewConnection("config"))

	consoleSvc := &console.Service{Port: platform.DefaultConsole()}
	if err := consoleSvc.Start(ctx, b.NewConnection("console")); err != nil {
		halt(errcode.Error, err)
	}

	// Codec bring-up. A codec that will not open or configure leaves the
	// capture stream dead, so there is nothing useful to continue into.
	codec := tlv320aic3254.New(platform.DefaultI2C(), 0)
	if err := codec.Open(); err != nil {
		halt(errcode.CodecOpen, err)
	}
	err := codec.Configure(tlv320aic3254.Config{
		SampleRate: pipeline.DefaultSampleRate,
		Bits:       16,
		Mono:       true,
	})
	if err != nil {
		halt(errcode.CodecConfig, err)
	}
	_ = codec.SetMicVolume(75)

	feed := sampring.New(1 << 15)
	go feedMic(feed)

	// Scripted stand-in for the inference engine; cycles through the three
	// canonical outcomes plus the threshold boundary.
	cls := &classify.Scripted{
		Input: pipeline.DefaultBlockLen / 2,
		Loop:  true,
		Results: []classify.Result{
			scores(0.91, 0.04, 0.05),
			scores(0.10, 0.85, 0.05),
			scores(0.10, 0.05, 0.85),
			scores(0.40, 0.55, 0.05),
			scores(0.50, 0.25, 0.25), // exactly at threshold: stays NOISE
		},
	}

	pins := platform.DefaultPinFactory()
	goPin, _ := pins.ByNumber(7)
	stopPin, _ := pins.ByNumber(6)
	out, err := disposition.New(goPin, stopPin)
	if err != nil {
		halt(errcode.Error, err)
	}

	evConn := b.NewConnection("pipeline")
	p, err := pipeline.New(pipeline.Config{
		Emit: func(ev pipeline.Event) {
			evConn.Publish(&bus.Message{Topic: bus.T("pipeline", "event"), Payload: ev})
		},
	}, i2ssim.New(feed), cls, out)
	if err != nil {
		halt(errcode.Of(err), err)
	}
	if err := p.Start(ctx); err != nil {
		halt(errcode.CaptureOpen, err)
	}

	// Supervisory wait: no steady-state work up here. Returns only on a
	// fatal worker exit or an injected error.
	err = p.Wait(ctx)
	halt(errcode.Of(err), err)
}

func scores(goV, noiseV, stopV float32) classify.Result {
	return classify.Result{
		Scores: []classify.Score{
			{Label: pipeline.LabelGo, Value: goV},
			{Label: pipeline.LabelNoise, Value: noiseV},
			{Label: pipeline.LabelStop, Value: stopV},
		},
		Timing: classify.Timing{DSP: 5 * time.Millisecond, Classification: 9 * time.Millisecond},
	}
}

// feedMic streams a synthetic mic tone at roughly the real sample rate:
// 1600 samples per 100 ms is 16 kHz.
func feedMic(feed *sampring.Ring) {
	const chunk = 1600
	buf := make([]int16, chunk)
	n := 0
	for {
		for i := range buf {
			buf[i] = int16(6000 * math.Sin(2*math.Pi*440*float64(n)/16000))
			n++
		}
		off := 0
		for off < len(buf) {
			w := feed.Write(buf[off:])
			if w == 0 {
				<-feed.Writable()
				continue
			}
			off += w
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// halt is the fatal posture: report once, then cease all forward progress
// and wait for an external reset.
func halt(code errcode.Code, err error) {
	if err != nil {
		println("fatal:", string(code), err.Error())
	} else {
		println("fatal:", string(code))
	}
	select {}
}
