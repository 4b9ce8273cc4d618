// Package simlog is the Go equivalent of original_source/Auxiliary.py: a
// thin logging facade every component in internal/fabriccore and
// internal/linkcore calls through, rather than writing to stdout directly.
//
// Auxiliary.py wraps Python's print() with a fixed "[<now> ns] [<tag>]
// <msg>" format and a verbose flag gating debug(); message() and timestamp()
// always print. This package keeps that exact wire format (it is part of
// the test oracle, spec.md §6) but routes it through
// github.com/joeycumines/logiface with its zerolog backend
// (github.com/joeycumines/izerolog), matching how every other component in the
// source pack does structured logging rather than hand-rolled Printf.
package simlog
