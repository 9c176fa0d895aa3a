// Package lib provides a Go SDK for managing task-cli tasks programmatically.
//
// It runs the same operations as the task-cli binary over the same task stores,
// so applications can manage tasks without shelling out to the CLI.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{StorePath: "tasks.json"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	task, err := client.AddTask(ctx, "write docs")
//	client.MarkTask(ctx, task.ID, lib.TaskStatusInProgress)
//	client.UpdateTask(ctx, task.ID, "write docs v2")
//	client.MarkTask(ctx, task.ID, lib.TaskStatusDone)
//	client.DeleteTask(ctx, task.ID)
//
// # Storage
//
//   - [StorageJSON]: a pretty printed JSON file, the format the CLI uses by default.
//   - [StorageSQLite]: a local SQLite database file.
//
// # Errors
//
// Errors can be classified with [errors.Is] against [ErrNotFound], [ErrNotValid],
// [ErrPersistence] and [ErrNoTasks].
package lib
