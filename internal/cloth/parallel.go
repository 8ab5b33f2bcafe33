package cloth

import "sync"

// parallelFor splits [0, n) into at most workers contiguous chunks of at
// least minChunk items and runs fn on each chunk concurrently.
func parallelFor(n, workers, minChunk int, fn func(start, end int)) {
	if workers <= 1 || n <= minChunk {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ColorBatches partitions the constraints of c so that no two constraints in
// one batch touch the same particle. A structural link along an axis is
// keyed by that axis and the parity of its lower endpoint's coordinate on
// it, giving at most six batches. Construction order is kept inside each
// batch.
func ColorBatches(c *Cloth) [][]Constraint {
	var buckets [6][]Constraint
	for _, con := range c.Constraints {
		ax, ay, az := c.Coord(con.A)
		bx, by, _ := c.Coord(con.B)

		var axis, coord int
		switch {
		case bx != ax:
			axis, coord = 0, ax
		case by != ay:
			axis, coord = 1, ay
		default:
			axis, coord = 2, az
		}
		k := axis*2 + coord%2
		buckets[k] = append(buckets[k], con)
	}

	batches := make([][]Constraint, 0, len(buckets))
	for _, b := range buckets {
		if len(b) > 0 {
			batches = append(batches, b)
		}
	}
	return batches
}

// RelaxBatches runs the batched constraint pass iterations times. Within a
// batch constraints are independent, so the result does not depend on the
// worker count.
func (c *Cloth) RelaxBatches(batches [][]Constraint, iterations, workers int) {
	for n := 0; n < iterations; n++ {
		for _, batch := range batches {
			parallelFor(len(batch), workers, minRelaxChunk, func(start, end int) {
				for _, con := range batch[start:end] {
					con.satisfy(c.Particles)
				}
			})
		}
	}
}
