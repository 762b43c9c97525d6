package database

import "context"

// MemoryDB đại diện cho backend in-process (memory://).
// Dữ liệu nằm trong các repository; struct này chỉ phục vụ lifecycle và health check.
type MemoryDB struct{}

func NewMemoryDB() *MemoryDB { return &MemoryDB{} }

func (*MemoryDB) Ping(context.Context) error { return nil }

func (*MemoryDB) Close(context.Context) error { return nil }
