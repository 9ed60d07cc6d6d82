// Package main provides a demo program for training a binary image classifier
// from a two-column CSV manifest of image files and labels. The images are
// streamed from disk batch by batch through a shuffled sequence, so sample
// sets larger than memory train fine.
package main
