// Package pipeline runs the cascading duplicate detection passes.
//
// A run is an ordered list of Steps. Each step receives the full dataset and
// the exclusion set accumulated so far, and returns a StageResult. The
// pipeline, not the steps, owns the exclusion set: after a claiming step it
// replaces its current set with the union of the old set and the step's
// URLs. Steps therefore stay pure functions of (dataset, prior exclusions).
//
// The default cascade is:
//  1. full (title + h1 + meta_description)
//  2. title_h1 (title + h1)
//  3. title_meta (title + meta_description)
//  4. title_only, h1_only, meta_description_only
//
// The single-field steps do not claim URLs. Each of them sees the exclusion
// set left by step 3, so one page may appear in several single-field
// reports.
//
// Steps of one run always execute sequentially. BatchProcessor analyzes
// several independent datasets concurrently using errgroup.
package pipeline
