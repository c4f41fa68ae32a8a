// Package suggest ranks close matches for a misspelled identifier against
// prioritized pools of known names ("did you mean ...").
//
// The metric is a bounded two-row Levenshtein distance, case-sensitive,
// with two special cases evaluated before the distance:
//
//   - an exact match always scores 1.0;
//   - a case-only mismatch (PI vs pi) scores 0.95, so common
//     capitalization slips rank above every real edit.
//
// The maximum allowed edit distance grows with the query length
// (1 edit for 2-4 runes, 2 for 5-8, 3 for longer); single-rune queries
// produce no suggestions at all. Candidates are also pre-filtered by
// length band so that very short or very long names never match a query
// they could not plausibly be a typo of. Scores are normalized as
// 1 - distance/max(len(query), len(candidate)).
//
// Results are deterministic: ordered by score (descending), then scope
// priority (local > enclosing > global > builtin > attribute), then
// name. The result set does not depend on the order the pools are
// passed in; duplicates across pools keep the highest-priority scope.
package suggest
