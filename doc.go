// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonwire implements a pull-based streaming JSON tokenizer.
//
// # Reading
//
// The Reader type reads a stream of JSON tokens from an io.Reader. Construct
// a Reader and call Peek to discover the type of the next token without
// consuming it, or call one of the Next* / Begin* / End* methods to consume
// it and advance:
//
//	r := jsonwire.NewReader(input)
//	if err := r.BeginObject(); err != nil {
//	   log.Fatal(err)
//	}
//	for {
//	   has, err := r.HasNext()
//	   if err != nil {
//	      log.Fatal(err)
//	   } else if !has {
//	      break
//	   }
//	   name, err := r.NextName()
//	   if err != nil {
//	      log.Fatal(err)
//	   }
//	   log.Printf("member %q", name)
//	   if err := r.SkipValue(); err != nil {
//	      log.Fatal(err)
//	   }
//	}
//	if err := r.EndObject(); err != nil {
//	   log.Fatal(err)
//	}
//
// # Strict and lenient modes
//
// By default a Reader accepts only RFC 7159 JSON. Calling SetLenient(true)
// switches it to a documented superset that additionally accepts a leading
// non-execute prefix ")]}'\n", C- and shell-style comments, single-quoted
// and unquoted strings and names, ';', '=', and "=>" as separators, the
// bareword literals NaN and Infinity, and unnecessary array element
// separators as an implicit null.
//
// # Errors
//
// A malformed token reports a *SyntaxError; misuse of the API (for example
// calling BeginArray when the next token is not the start of an array)
// reports a *StateError. Both carry the reader's location at the time the
// error was detected, in the form "line L column C path P". I/O errors from
// the underlying reader are returned unwrapped.
//
// # Ordered maps
//
// The companion package jsonwire/omap implements an insertion-ordered map
// backed by a hash-bucketed table of self-balancing binary search trees, for
// callers that need to decode a JSON object while preserving the order its
// members appeared in the source.
package jsonwire
