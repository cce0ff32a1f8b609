// Package shoptests contains the steps that exercise the shop API and the scenario that
// sequences them.
//
// Bookkeeping that is not specific to the shop domain, such as step identifiers, filtering and
// per-step debug output, is in the lower-level framework package. Sending requests is the job
// of the transport package.
package shoptests
