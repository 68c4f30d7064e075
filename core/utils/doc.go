// Package utils converts raw database values for the reconcile adapters,
// which scan rows into maps rather than models.
package utils
