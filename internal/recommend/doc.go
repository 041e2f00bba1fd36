// Package recommend implements role-based personalization scoring for
// event candidates, with calibration support for the scoring weights.
//
// The engine is a pure function over an in-memory candidate snapshot: given
// a user role it computes an additive match score per event, attaches a
// human-readable reason and up to three short display tags, and returns the
// top-N events in descending score order. Ties keep the input order.
//
// Scoring components (defaults, calibratable via a JSON file):
//
//   - Role match: +60 when the event targets the role, +30 when it targets
//     more than three roles (broadly applicable), else +0.
//   - Quality: (rating - 4.0) * 15, uncapped before the final clamp.
//   - Scale: +10 / +7 / +5 for >=200 / >=100 / >=50 attendees.
//   - Feature richness: 2 points per special feature, capped at 10.
//   - Momentum: +3 featured, +2 trending.
//
// The sum is rounded and clamped to at most 100. There is deliberately no
// lower clamp: a sufficiently poor rating can surface as a negative score,
// matching the long-standing product behavior.
//
// Events imported from tabular sources carry no role metadata; the engine
// substitutes neutral defaults so scoring is total over any candidate.
package recommend
