package pipeline

import "voicedrive-go/classify"

// Action is one of the small fixed set of actuation output states.
type Action uint8

const (
	ActionHold Action = iota // neutral: leave the current output state alone
	ActionAdvance
	ActionHalt
)

func (a Action) String() string {
	switch a {
	case ActionAdvance:
		return "advance"
	case ActionHalt:
		return "halt"
	default:
		return "hold"
	}
}

// Labels the default keyword model emits, in model output order.
const (
	LabelGo    = "go"
	LabelNoise = "noise"
	LabelStop  = "stop"
)

// Rule binds one label to the action it commands and the word logged when
// it wins.
type Rule struct {
	Label  string
	Action Action
	Word   string
}

// Policy is the pipeline-owned interpretation of classifier scores. It
// lives outside the classifier so the decision rule can change without
// touching the model: the first rule (in priority order) whose label's
// confidence strictly exceeds Threshold wins; no winner yields the neutral
// decision.
type Policy struct {
	Threshold   float32
	Rules       []Rule
	NeutralWord string
}

// DefaultPolicy reproduces the stock firmware behaviour: "go" beats "stop",
// anything at or below 0.50 confidence is noise.
func DefaultPolicy() Policy {
	return Policy{
		Threshold: 0.50,
		Rules: []Rule{
			{Label: LabelGo, Action: ActionAdvance, Word: "GO"},
			{Label: LabelStop, Action: ActionHalt, Word: "STOP"},
		},
		NeutralWord: "NOISE",
	}
}

// Decision is the outcome of applying a Policy to one classifier result.
type Decision struct {
	Action     Action
	Label      string
	Word       string
	Confidence float32
}

// Decide applies the policy. The threshold is strict: a confidence of
// exactly Threshold does not win.
func (p Policy) Decide(res classify.Result) Decision {
	for _, rule := range p.Rules {
		for _, sc := range res.Scores {
			if sc.Label != rule.Label {
				continue
			}
			if sc.Value > p.Threshold {
				return Decision{
					Action:     rule.Action,
					Label:      sc.Label,
					Word:       rule.Word,
					Confidence: sc.Value,
				}
			}
			break
		}
	}
	return Decision{Action: ActionHold, Word: p.NeutralWord}
}
