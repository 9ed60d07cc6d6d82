// Package trainer provides the high-level fitting routine wiring a batch
// sequence into per-unit training of the feedforward classifier. It streams
// every epoch exactly once through a prefetched queue of loader workers.
package trainer
