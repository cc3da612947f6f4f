package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todolist configuration file
# Values can be overridden by .env, TODOLIST_* environment variables or CLI flags

# Data directory for the file and SQLite stores (supports ~ expansion)
data_dir = "~/.todolist"

# Log directory; the TUI writes one log file per run here
log_dir = "~/.todolist/logs"

# Logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

[store]
# Backend: file, sqlite, nats or memory
kind = "file"

# Key holding the task list
key = "tasks"

# File backend path (default: <data_dir>/storage.json)
# path = "~/.todolist/storage.json"

# SQLite backend path (default: <data_dir>/todolist.db)
# sqlite_path = "~/.todolist/todolist.db"

# NATS backend; leave nats_url empty to run an embedded server under <data_dir>/nats
# nats_url = "nats://127.0.0.1:4222"
nats_bucket = "todolist"
`
}
