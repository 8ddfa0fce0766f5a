// Package kmeans implements k-means clustering for filter similarity grouping.
//
// Used internally by channel selection to partition the flattened filter rows
// of a convolutional layer into clusters of similar filters.
package kmeans
