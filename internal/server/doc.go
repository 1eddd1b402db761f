// Package server implements the marsphotos proxy: a single cached
// passthrough route in front of the NASA Mars Rover Photos API, plus health
// and Prometheus endpoints, run under a suture supervisor.
package server
