// Package kmeans implements Lloyd's k-means over RGB color vectors.
//
// Two interchangeable engines are provided: a single-goroutine reference
// engine and a parallel engine that partitions the pixel sequence across
// workers. Both use the same seeded initialization and produce identical
// results for integral pixel values.
package kmeans
