// Package main ForgeSim hosting dashboard simulator API
//
// ForgeSim maintains branch-scoped version history for a set of in-memory
// repositories, derives a commit graph for visualization, and keeps a
// whole-store undo/redo journal, persisted as a single blob in BadgerDB.
package main

import "github.com/forgesim/forgesim/internal"

func main() {
	internal.Run()
}
