// Package evaluate scores extracted offers. Two independent strategies
// exist behind one interface: a weighted-normalized model and a
// rank-weighted rule model. Decision thresholds are fixed: a score of 70
// or above recommends accept, 30 or below recommends decline, anything
// between recommends nothing.
package evaluate
