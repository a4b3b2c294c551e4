// Package main hosts the photosort CLI entrypoint and command graph.
//
// The Cobra-based command tree maps flags and configuration onto the sorting
// core, renders its event stream for the terminal, and exposes the run
// journal, preflight checks and configuration scaffolding. Configuration and
// environment are read here only; the internal sorting packages receive plain
// parameters.
package main
