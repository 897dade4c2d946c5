package parser

// FileStats contains statistical information about a parsed STEP file
type FileStats struct {
	// EntityCount is the number of entities in the DATA section
	EntityCount int
	// ReferenceCount is the total number of distinct one-level references
	// across all entities
	ReferenceCount int
	// ComplexCount is the number of complex (multi-record) entities
	ComplexCount int
	// TypeCounts maps each entity type keyword to its number of occurrences.
	// Complex entities are counted once per sub-record type.
	TypeCounts map[string]int
}

// GetFileStats returns statistics for a parsed STEP file
func GetFileStats(file *StepFile) FileStats {
	stats := FileStats{TypeCounts: make(map[string]int)}
	if file == nil || file.Data == nil {
		return stats
	}

	stats.EntityCount = file.Data.Len()
	for _, e := range file.Data.Entities {
		stats.ReferenceCount += len(e.References())
		if e.IsComplex() {
			stats.ComplexCount++
			for _, rec := range e.Complex {
				stats.TypeCounts[rec.Type]++
			}
			continue
		}
		stats.TypeCounts[e.Type]++
	}
	return stats
}
