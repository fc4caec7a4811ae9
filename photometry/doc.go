// Package photometry merges unevenly sampled light curves contributed by many
// observers into one composite series.
//
// Raw records are cleaned (non-detections and other passbands dropped),
// grouped by observer, and then folded together largest group first. Each
// group is shifted by the additive magnitude offset that makes the merged
// curve smoothest, where smoothness is the ratio of the sample variance to the
// mean squared successive difference (the inverse of the von Neumann ratio).
// The offset is found by brute force over a fixed grid.
//
// The fold is greedy: every group is compared against the composite built so
// far, never against its peers, so the result depends on the merge order and
// is not a global optimum across all pairings.
package photometry
