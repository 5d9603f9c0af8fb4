// Package frame is the tabular host for the Butterworth filter: a Frame holds
// named float64 columns of equal length, and Command runs the iir_filter
// operation on one of them, appending a filtered_<name> column.
package frame
