// Package mkhub reads and patches resources held in a store.Store.
//
// Read projects the node a path names to JSON. Patch merges a JSON object
// into that node:
//
//   - fields absent from the node are added
//   - scalar fields are overwritten
//   - object fields are merged recursively
//   - array fields are replaced as a whole, never merged element by element
//   - fields the patch does not mention are left alone, and null patch
//     fields are ignored
//
// The merge runs inside a single store mutation, so concurrent readers see
// either none or all of it. PatchOps applies RFC 6902 operations instead of
// a merge. Filter selects nodes with boolean expressions over their JSON
// projection.
package mkhub
