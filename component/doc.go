// Package component defines lifecycle and health interfaces for client
// infrastructure: transports and credential stores.
//
// The CLI registers components with a Registry, starts them before running a
// command and stops them in reverse order afterwards.
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: one-line configuration summary
//   - BaseLazyComponent: initialize on first use
package component
