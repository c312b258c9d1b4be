package console

import (
	"context"

	"voicedrive-go/bus"
	"voicedrive-go/hal"
	"voicedrive-go/pipeline"
	"voicedrive-go/x/fmtx"
)

var (
	topicPipelineEvent = bus.T("pipeline", "event")
	topicRoverState    = bus.T("rover", "state")
)

// Service writes one diagnostic text line per pipeline event or drive
// state change. Strictly best effort: the bus drops on overflow and the
// port may go nowhere; neither ever stalls the pipeline.
type Service struct {
	Port hal.ConsolePort

	// Verbose adds per-label confidences and timing to each event line.
	Verbose bool
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection, evSub, stateSub *bus.Subscription) {
	defer conn.Unsubscribe(evSub)
	defer conn.Unsubscribe(stateSub)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-evSub.Channel():
			ev, ok := msg.Payload.(pipeline.Event)
			if !ok {
				continue
			}
			s.printEvent(ev)
		case msg := <-stateSub.Channel():
			if state, ok := msg.Payload.(string); ok {
				fmtx.Fprintf(s.Port, "rover: %s\r\n", state)
			}
		}
	}
}

func (s *Service) printEvent(ev pipeline.Event) {
	if !s.Verbose {
		fmtx.Fprintf(s.Port, "%s\r\n", ev.Decision.Word)
		return
	}
	fmtx.Fprintf(s.Port, "%s", ev.Decision.Word)
	for _, sc := range ev.Scores {
		fmtx.Fprintf(s.Port, "    %s-%.5f", sc.Label, sc.Value)
	}
	fmtx.Fprintf(s.Port, "    (dsp %dms, nn %dms)\r\n",
		ev.Timing.DSP.Milliseconds(), ev.Timing.Classification.Milliseconds())
}

// Start subscribes and launches the console writer. Subscriptions happen
// here so nothing published after Start returns is missed.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	evSub := conn.Subscribe(topicPipelineEvent)
	stateSub := conn.Subscribe(topicRoverState)
	go s.serviceLoop(ctx, conn, evSub, stateSub)
	return nil
}
