package config

import "time"

type Logger interface {
	Level() string
	AsJSON() bool
}

type Warehouse interface {
	Rows() int
	Shelves() int
	Levels() int
	Zones() int
	Strategy() string
}

type Storage interface {
	Backend() string
	SnapshotDir() string
	IOTimeout() time.Duration
}

type Database interface {
	DatabaseName() string
	SnapshotCollection() string
	DSN() string
}
