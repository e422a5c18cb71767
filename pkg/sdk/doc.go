// Package inventory provides a Go client for the inventory list service.
// It runs the same searches, reports and vocabulary edits as the HTTP API,
// in-process, against a remote inventory backend.
//
// # Searching
//
//	client, _ := inventory.New(ctx, inventory.WithBackend("http://okapi:9130", "diku"))
//	page, _ := client.Search(ctx, inventory.Query{Index: "title", Term: "moby"}, 0, 30)
//
// # Reports
//
// Reports deliver files and notices to a Sink:
//
//	sink := inventory.DirSink("./out", nil)
//	outcome, _ := client.Reports().IDs(ctx, inventory.Query{Term: "moby"}, sink)
//
// Each report kind runs once at a time per client. A trigger that finds its
// kind running returns OutcomeIgnored.
package inventory
