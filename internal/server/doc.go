// Package server mounts the form and preview screens, the PDF download
// endpoints and their JSON equivalents on a net/http mux.
package server
