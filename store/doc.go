// Package store provides the document store shared by every simulated
// resource.
//
// A Store owns one tree of ir.Node. Readers work against the last
// committed snapshot without locking. Writers are serialised by a single
// mutex: each mutation runs against a private copy of the tree which is
// published only when the mutation returns without error, so no reader ever
// sees a half applied change and a failed mutation leaves nothing behind.
// Serialising all writers, rather than only those touching overlapping
// subtrees, is a deliberate simplification for a test fixture workload.
//
// Every committed mutation increments the store version. A Ref locates a
// node within the snapshot of one version; using it after another commit
// fails with ErrStaleRef, and the caller must resolve its path again.
//
// # Watching
//
// Watch registers interest in commits touching nodes below a positional
// path prefix (see ir.Node.Path). Notifications are never allowed to block
// a writer: a watcher whose buffer is full is failed and dropped.
package store
