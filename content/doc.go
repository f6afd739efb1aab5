// Package content describes the content collections of the service:
// locations, layers, widgets and dashboards. Each Type names its relations
// for population, the field types used to coerce filter values, and the
// closed value sets reported as zero-count facet buckets.
package content
