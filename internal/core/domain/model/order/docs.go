// Package order contains the Order aggregate and its lifecycle rules: eager,
// aggregated field validation, the derived order total, and the five-minute
// mutability window measured from the creation timestamp.
package order
