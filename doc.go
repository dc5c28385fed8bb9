// Package smarttask provides a Go client library for the Smart Task
// Manager backend with a declarative, tag-based cache-consistency layer
// and a capacity-aware assignment workflow.
//
// Every read goes through a query cache keyed by operation and arguments.
// Writes declare which resource tags they invalidate; intersecting cached
// reads are marked stale and, when subscribed, refetched automatically.
// Concurrent subscribers to the same read share a single in-flight
// request, and late responses superseded by a newer request are
// discarded.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/nhnasim333/smart-task-manager"
//
//	cfg := smarttask.DefaultConfig()
//	cfg.BaseURL = "https://api.example.com/api/v1"
//
//	client, err := smarttask.NewClient(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Stop(context.Background())
//
//	identity, err := client.Login(ctx, smarttask.Credentials{
//	    Email:    "alice@example.com",
//	    Password: "secret",
//	})
//
// # Subscribing to reads
//
// Query constructors bind REST endpoints to cache operations. A handle
// delivers the current snapshot and every subsequent change:
//
//	handle, err := client.Subscribe(ctx, client.TasksQuery(smarttask.TaskFilter{}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Unsubscribe(handle)
//
//	for snap := range handle.Updates() {
//	    render(snap)
//	}
//
// # Capacity-aware assignment
//
// The workflow gates task submission when the selected member is at or
// above capacity:
//
//	wf := client.Workflow()
//	wf.SetTeam(team)
//	if wf.SelectMember(memberID) == workflow.GuardWarning {
//	    // surface the warning; resubmit with override=true to proceed
//	}
//	task, err := wf.CreateTask(ctx, draft, false)
//
// See the examples/ directory for complete working examples.
package smarttask
