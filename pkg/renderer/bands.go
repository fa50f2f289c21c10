package renderer

// Band is a half-open range of image rows [Start, End)
type Band struct {
	Start, End int
}

func (b Band) Rows() int {
	return b.End - b.Start
}

// PartitionRows splits [0, height) into at most parts contiguous bands whose
// sizes differ by at most one row. Every row belongs to exactly one band.
func PartitionRows(height, parts int) []Band {
	if height <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > height {
		parts = height
	}

	bands := make([]Band, 0, parts)
	base, extra := height/parts, height%parts
	start := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		bands = append(bands, Band{Start: start, End: start + size})
		start += size
	}
	return bands
}
