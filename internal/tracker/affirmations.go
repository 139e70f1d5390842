package tracker

import "math/rand"

var affirmations = []string{
	"EXCELLENT WORK, SIR.",
	"PROTOCOL COMPLETED SUCCESSFULLY.",
	"SYSTEM EFFICIENCY INCREASED.",
	"YOU ARE UNSTOPPABLE.",
	"ANOTHER STEP TOWARDS PERFECTION.",
	"DATA PROCESSED. WELL DONE.",
	"KEEP PUSHING THE BOUNDARIES.",
	"THE FUTURE IS BUILT BY YOU.",
}

// randomAffirmation picks one of the stock affirmation lines. Purely
// cosmetic; callers surface it however they like.
func randomAffirmation() string {
	return affirmations[rand.Intn(len(affirmations))]
}
