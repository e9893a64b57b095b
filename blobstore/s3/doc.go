// Package s3 implements blobstore.BlobStore on Amazon S3.
//
// Column files are written once and read with range requests, which maps
// directly onto S3 semantics: Put and Create upload whole objects, and
// Blob.ReadAt issues ranged GETs so a reader can pull single columns out of
// a large matrix without downloading it.
package s3
