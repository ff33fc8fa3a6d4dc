// Package transport defines the minimal byte-transport capability that
// framer, router, and node build on top of.
//
// framewire does not ship concrete transport adapters (serial, TCP, UDP,
// USB): those are left to the application. The only concrete implementation
// in this repository is transport/memlink, an in-memory duplex loopback used
// by tests and the demo command.
package transport
