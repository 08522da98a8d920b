// Package learning records realized outcomes against past risk assessments
// and flags systematic over/under-estimation for offline recalibration. It
// is strictly observational: nothing here mutates an assessment, a profile
// or a factor weight - recalibration is a separate, externally triggered
// operation that consumes the recorded learning events.
package learning
