// Package sparkgbm provides the columnar bin-value storage core for
// gradient boosted tree training.
//
// Upstream feature binning turns every continuous feature into small integer
// bin indices; this module stores those bins as width-adaptive vectors
// (package binvec), groups them into immutable column-oriented datasets, and
// persists them as checksummed column files (package colstore) on local disk
// or object storage (package blobstore).
//
// # Quick start
//
//	cols := []binvec.BinVector[uint8]{
//		binvec.Dense([]uint8{0, 2, 0, 5, 0}),
//	}
//	ds, _ := sparkgbm.NewDataset(cols)
//
//	// Project onto a sorted subset of rows, e.g. a bagging sample.
//	sample := ds.SliceRows([]int{1, 2, 3})
//
//	// Persist and reload.
//	store := blobstore.NewLocalStore("./data")
//	_ = ds.Save(ctx, store, "fold-0/bins.gbm")
//	ds2, _ := sparkgbm.Load[uint8](ctx, store, "fold-0/bins.gbm")
//
// Datasets and vectors are immutable after construction and safe to share
// across goroutines.
package sparkgbm
