// Package pdf writes laid-out contact records as PDF files using the
// standard Helvetica fonts, so no font files are embedded.
package pdf
