// Package ports declares the driven-side interfaces of Varion.
//
// The parsing core is pure and needs no ports; these contracts exist for the
// surrounding application: where session state is persisted and where raw
// script text comes from. Adapters live under pkg/adapters.
package ports
