// Package pipeline runs best-match searches of many queries against a
// reference collection on a bounded pool of workers.
//
// Work is split into tasks of one query against one shard of the
// references. Workers reduce each task with bestmatch.Reduce; a single
// collector merges the partial records of a query and hands the final
// record to the caller once every shard has been evaluated. Because
// bestmatch.Merge is order independent, records do not depend on the number
// of workers or shards.
package pipeline
