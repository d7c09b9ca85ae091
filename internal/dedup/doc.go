// Package dedup implements exact duplicate detection over page metadata.
//
// The package contains the building blocks used by every pass of the
// cascade:
//   - Normalize: canonicalizes a raw field value
//   - BuildKey: joins normalized values into a composite grouping key
//   - GroupByFields / GroupBySingleField: partition a dataset into groups
//     of two or more pages sharing the same key
//   - ExclusionSet: the immutable set of URLs already claimed by a more
//     specific pass
//
// Every function in this package is pure. Nothing here holds state between
// calls; the pipeline package threads the exclusion set from pass to pass.
package dedup
