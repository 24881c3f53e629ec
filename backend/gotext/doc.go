// Package gotext is the portable, pure Go backend adapter for fontkit.
//
// It implements the fontkit.Rasterizer contract on top of the Go font
// ecosystem instead of a native engine: font files are parsed with
// golang.org/x/image/font/sfnt, glyph outlines are filled with
// golang.org/x/image/vector, underline and strikeout metrics and color
// (emoji) bitmap strikes come from github.com/go-text/typesetting, and
// system fonts are located through typesetting's fontscan index with
// github.com/flopp/go-findfont as a file-name probe.
//
// Like every fontkit backend, a Rasterizer from this package is confined
// to a single owner and performs no internal locking.
package gotext
