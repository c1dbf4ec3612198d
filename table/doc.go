// Package table keeps Union values in a handle table.
//
// Collaborators that pass unions around by reference (message queues, binding
// caches, interactive tools) store them here and hand out integer handles:
//
//	tbl := table.New()
//	h := tbl.Insert(union.From(int32(42)))
//
//	u, ok := tbl.Get(h)                 // raw union
//	n, ok := table.GetAs[int32](tbl, h) // typed read, false on mismatch
//
//	tbl.Remove(h)
//
// Handle 0 is never issued. Removed handles are reused.
//
// # Observers
//
// Observers see every insert and removal:
//
//	tbl.Subscribe(table.ObserverFunc(func(e table.Event) {
//	    if e.Type == table.EventDropped {
//	        log.Printf("handle %d dropped", e.Handle)
//	    }
//	}))
//
// # Cleanup
//
// When a removed union boxes a value implementing Dropper, Drop is called
// once. Close drops everything and makes further inserts fail.
package table
