// Package batch runs work over a slice of items in fixed-size batches.
//
// Batches can be processed sequentially, stopping at the first error, or
// concurrently with an errgroup limit. Callbacks receive the absolute offset
// of each batch so results can be written back in input order.
package batch
