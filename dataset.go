package sparkgbm

import (
	"context"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/RoyMachineLearning/SparkGBM/binvec"
	"github.com/RoyMachineLearning/SparkGBM/blobstore"
	"github.com/RoyMachineLearning/SparkGBM/colstore"
)

// Dataset is an immutable column-oriented matrix of bin values: one bin
// vector per feature, all with the same number of rows.
type Dataset[V binvec.Integer] struct {
	rows int
	cols []binvec.BinVector[V]
}

// NewDataset builds a dataset from feature columns. All columns must have
// equal size; otherwise *ErrColumnSize is returned.
func NewDataset[V binvec.Integer](cols []binvec.BinVector[V]) (*Dataset[V], error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Size()
	}
	for j, col := range cols {
		if col.Size() != rows {
			return nil, &ErrColumnSize{Column: j, Want: rows, Got: col.Size()}
		}
	}
	return &Dataset[V]{rows: rows, cols: cols}, nil
}

// NumRows returns the number of rows (training examples).
func (d *Dataset[V]) NumRows() int {
	return d.rows
}

// NumCols returns the number of feature columns.
func (d *Dataset[V]) NumCols() int {
	return len(d.cols)
}

// Column returns feature column j.
func (d *Dataset[V]) Column(j int) binvec.BinVector[V] {
	return d.cols[j]
}

// Row materializes row i across all columns.
func (d *Dataset[V]) Row(i int) []V {
	out := make([]V, len(d.cols))
	for j, col := range d.cols {
		out[j] = col.At(i)
	}
	return out
}

// SliceRows projects every column onto the given strictly increasing row
// positions, producing a dataset of len(sorted) rows. Columns are sliced
// concurrently; each result owns fresh storage.
func (d *Dataset[V]) SliceRows(sorted []int) *Dataset[V] {
	out := make([]binvec.BinVector[V], len(d.cols))

	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for j := range d.cols {
		g.Go(func() error {
			out[j] = d.cols[j].Slice(sorted)
			return nil
		})
	}
	// Column slicing cannot fail on rows validated at construction.
	_ = g.Wait()

	return &Dataset[V]{rows: len(sorted), cols: out}
}

// SampleRows projects the dataset onto the rows in sample, in increasing
// order. Row sampling (bagging, goss) produces these bitmaps cheaply and
// they intersect well with binvec.ActiveBitmap output.
func (d *Dataset[V]) SampleRows(sample *roaring.Bitmap) (*Dataset[V], error) {
	if !sample.IsEmpty() && int(sample.Maximum()) >= d.rows {
		return nil, ErrRowOutOfRange
	}
	sorted := make([]int, 0, sample.GetCardinality())
	it := sample.Iterator()
	for it.HasNext() {
		sorted = append(sorted, int(it.Next()))
	}
	return d.SliceRows(sorted), nil
}

// Save writes the dataset as a column file blob.
func (d *Dataset[V]) Save(ctx context.Context, store blobstore.BlobStore, name string, opts ...colstore.Option) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := colstore.Write(w, d.cols, opts...); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Load reads a dataset previously written by Save.
func Load[V binvec.Integer](ctx context.Context, store blobstore.BlobStore, name string) (*Dataset[V], error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	cols, err := colstore.Read[V](data)
	if err != nil {
		return nil, err
	}
	return NewDataset(cols)
}
