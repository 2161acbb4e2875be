package render

import "sync/atomic"

// Stats counts the work done by an [Engine].
type Stats struct {
	Documents     int64
	Includes      int64
	Substitutions int64
	Warnings      int64
}

type stats struct {
	documents     atomic.Int64
	includes      atomic.Int64
	substitutions atomic.Int64
	warnings      atomic.Int64
}

func (s *stats) snapshot() Stats {
	return Stats{
		Documents:     s.documents.Load(),
		Includes:      s.includes.Load(),
		Substitutions: s.substitutions.Load(),
		Warnings:      s.warnings.Load(),
	}
}
