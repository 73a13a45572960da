package collision

// Hit records a mobile body that was rolled back.
type Hit struct {
	// Body is the index of the rolled back body.
	Body int
	// Other is the index of the body it ran into.
	Other int
}

// Feedback is notified of each rollback, e.g. to play a sound.
type Feedback func(Hit)

// Resolve tests every mobile body against every other body. A mobile body
// that overlaps anything is moved back to its previous position and feedback
// is notified once for it. Bodies are processed in order, so later bodies see
// earlier rollbacks.
func Resolve(bodies []Body, feedback Feedback) []Hit {
	var hits []Hit
	for i := range bodies {
		b := &bodies[i]
		if b.Kind != Mobile || b.State == nil {
			continue
		}
		for j := range bodies {
			if i == j {
				continue
			}
			if !Overlaps(b, &bodies[j]) {
				continue
			}

			b.State.Rollback()
			hit := Hit{Body: i, Other: j}
			hits = append(hits, hit)
			if feedback != nil {
				feedback(hit)
			}
			break
		}
	}
	return hits
}
