package harness

// evalAssertion checks one assertion against the result's timeline,
// recording any failure on the result.
func evalAssertion(r *Result, index int, a *Assertion) {
	switch a.Type {
	case AssertEventCount:
		if len(r.Events) != a.Count {
			r.AddError("assertions[%d] event_count: got %d events, want %d", index, len(r.Events), a.Count)
		}

	case AssertTimeOrdered:
		for i := 1; i < len(r.Events); i++ {
			if r.Events[i].Start < r.Events[i-1].Start {
				r.AddError("assertions[%d] time_ordered: event %d starts at %v after %v", index, i, r.Events[i].Start, r.Events[i-1].Start)
				return
			}
		}

	case AssertPitchRange:
		for i, ev := range r.Events {
			if ev.Pitch < a.Min || ev.Pitch > a.Max {
				r.AddError("assertions[%d] pitch_range: event %d pitch %v outside [%v, %v]", index, i, ev.Pitch, a.Min, a.Max)
				return
			}
		}

	case AssertChannelPresent:
		for _, ev := range r.Events {
			if ev.Channel == *a.Channel {
				return
			}
		}
		r.AddError("assertions[%d] channel_present: no events on channel %d", index, *a.Channel)

	case AssertFirstEvent:
		if len(r.Events) == 0 {
			r.AddError("assertions[%d] first_event: timeline is empty", index)
			return
		}
		first := r.Events[0]
		if a.Start != nil && first.Start != *a.Start {
			r.AddError("assertions[%d] first_event: start %v, want %v", index, first.Start, *a.Start)
		}
		if a.Pitch != nil && first.Pitch != *a.Pitch {
			r.AddError("assertions[%d] first_event: pitch %v, want %v", index, first.Pitch, *a.Pitch)
		}
		if a.Amp != nil && first.Amp != *a.Amp {
			r.AddError("assertions[%d] first_event: amp %v, want %v", index, first.Amp, *a.Amp)
		}
	}
}
