// Package streak computes consistency metrics over dated true/false
// observations: the longest run of consecutive completed days and the run
// ending today. Everything here is pure; callers pass the evaluation time in.
package streak
