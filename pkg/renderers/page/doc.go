// Package page renders the two HTML screens: the form that collects a
// contact record and the preview of a stored record. A third, print
// layout feeds the headless browser PDF engine.
package page
