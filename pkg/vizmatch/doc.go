// Package vizmatch renders tie point figures for every image pair of a
// MicMac project.
//
// The matcher stores one match record per unordered image pair under
// Homol/Pastis<first>/<second>.txt. vizmatch discovers the image set of a
// project, enumerates all pairs in a deterministic orientation and hands each
// pair to a renderer, either one pair at a time or fanned out across a worker
// pool. The pipeline stops on the first encountered error: a missing match
// record or a renderer failure aborts the batch instead of producing a
// partial, silently incomplete set of figures.
package vizmatch
