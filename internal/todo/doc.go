// Package todo holds the task list and its on-disk document.
//
// The task file (tasks.json by default) is a single JSON object:
//
//	{
//	  "tasks": [
//	    {"id": 1, "description": "Buy milk", "completed": true},
//	    {"id": 2, "description": "Walk dog", "completed": false}
//	  ],
//	  "next_id": 3
//	}
//
// # Identifiers
//
// Identifiers are allocated from next_id and never handed out twice. Removing a
// task does not lower next_id, so the counter is persisted as-is rather than
// recomputed from the tasks present.
//
// # Validation
//
// Documents are checked against the embedded tasks.schema.json (JSON Schema
// draft 2020-12) and then against the rules the schema cannot express:
//   - task ids are unique
//   - every task id is below next_id
//
// A missing task file is an empty list. A file that fails any check is a
// FormatError; a file that cannot be read or written is a FileError.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - A temporary file renamed over the target, so a failed write leaves the
//     previous document in place
package todo
