// Package store persists per-document batch results in SQLite.
//
// The core translation path never touches the store: it exists so a
// batch over thousands of documents leaves a queryable record of which
// inputs succeeded, which failed and why, and how noisy each run was.
// One row per translation run, keyed by the run token.
//
// SQLite runs in WAL mode so result rows can be read while a batch is
// still writing.
package store
