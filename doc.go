// Package hyperbolic renders regular {p,q} tilings of the hyperbolic plane.
//
// Tiles are placed on the hyperboloid model by isometries (package geom),
// generated to a bounded depth (package tiling), and drawn through one of
// several projection models (package projection) from a draggable viewpoint
// (package view).
package hyperbolic
