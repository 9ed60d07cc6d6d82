// Package main provides a demo program for classifying images with a trained
// binary classifier model, reporting per-file predictions and overall accuracy
// against the labels in the csv manifest.
package main
