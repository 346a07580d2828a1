// Package main hosts the tagwise CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the logger and the
// text generator stack (provider client, rate gate, response cache), and
// hands tracks to the analysis pipeline. Results render as a table on a
// terminal and as JSON otherwise.
package main
