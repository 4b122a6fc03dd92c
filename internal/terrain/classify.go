// Terrain classification from elevation plus layered simplex climate
// fields. Elevation comes from the fold generator; rainfall and
// temperature are independent octave-noise overlays.
package terrain

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Class enumerates terrain types for surface cells.
type Class uint8

const (
	ClassOcean    Class = iota // Below sea level
	ClassCoast                 // Land bordering ocean
	ClassPlains                // Default temperate land
	ClassForest                // Wet highlands
	ClassRiver                 // Traced drainage path
	ClassDesert                // Hot and dry
	ClassSwamp                 // Wet lowlands
	ClassTundra                // Cold
	ClassMountain              // Above the mountain threshold
)

// ClassifyConfig holds classification parameters.
type ClassifyConfig struct {
	Seed        int64   // Seed for the climate noise layers
	SeaLevel    float64 // Normalized elevation threshold for ocean (0.0-1.0)
	MountainLvl float64 // Normalized elevation threshold for mountains (0.0-1.0)
}

// DefaultClassifyConfig returns a reasonable starting configuration.
func DefaultClassifyConfig() ClassifyConfig {
	return ClassifyConfig{
		Seed:        1,
		SeaLevel:    0.30,
		MountainLvl: 0.75,
	}
}

// Classify derives a terrain class for every cell of the surface.
// Elevation is normalized against the surface bounds; rainfall and
// temperature come from independent octave-noise layers, with temperature
// reduced at altitude. Post-passes mark coastal cells and trace rivers.
func Classify(s *Surface, cfg ClassifyConfig) [][]Class {
	rainNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	tempNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	min, max := s.Bounds()
	span := max - min
	if span == 0 {
		span = 1
	}

	classes := make([][]Class, s.Len())
	for col := 0; col < s.Len(); col++ {
		classes[col] = make([]Class, s.Width())
		for row := 0; row < s.Width(); row++ {
			x := float64(col)
			y := float64(row)

			elev := (s.At(col, row) - min) / span
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

			// Temperature drops with elevation.
			temp = temp*0.7 + (1.0-elev)*0.3

			classes[col][row] = deriveClass(elev, rain, temp, cfg)
		}
	}

	markCoastalCells(s, classes, cfg)
	placeRivers(s, classes, cfg)

	return classes
}

// deriveClass determines a terrain class from environmental parameters.
func deriveClass(elev, rain, temp float64, cfg ClassifyConfig) Class {
	if elev < cfg.SeaLevel {
		return ClassOcean
	}
	if elev > cfg.MountainLvl {
		return ClassMountain
	}
	if temp < 0.25 {
		return ClassTundra
	}
	if rain < 0.25 && temp > 0.5 {
		return ClassDesert
	}
	if rain > 0.7 && elev < 0.45 {
		return ClassSwamp
	}
	if rain > 0.45 && elev > 0.45 {
		return ClassForest
	}
	return ClassPlains
}

// cellNeighbors are the four grid-adjacent offsets.
var cellNeighbors = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// markCoastalCells converts low land cells adjacent to ocean into coast.
func markCoastalCells(s *Surface, classes [][]Class, cfg ClassifyConfig) {
	min, max := s.Bounds()
	span := max - min
	if span == 0 {
		span = 1
	}

	var toMark [][2]int
	for col := range classes {
		for row := range classes[col] {
			c := classes[col][row]
			if c != ClassPlains && c != ClassForest {
				continue
			}
			for _, d := range cellNeighbors {
				nc, nr := col+d[0], row+d[1]
				if nc < 0 || nc >= len(classes) || nr < 0 || nr >= s.Width() {
					continue
				}
				if classes[nc][nr] == ClassOcean {
					toMark = append(toMark, [2]int{col, row})
					break
				}
			}
		}
	}

	for _, cell := range toMark {
		col, row := cell[0], cell[1]
		elev := (s.At(col, row) - min) / span
		if elev < 0.5 {
			classes[col][row] = ClassCoast
		}
	}
}

// placeRivers traces drainage paths from high cells down to the ocean.
// Only a handful of sources become rivers.
func placeRivers(s *Surface, classes [][]Class, cfg ClassifyConfig) {
	min, max := s.Bounds()
	span := max - min
	if span == 0 {
		return
	}

	var sources [][2]int
	for col := range classes {
		for row := range classes[col] {
			elev := (s.At(col, row) - min) / span
			if elev > 0.65 && classes[col][row] != ClassOcean {
				sources = append(sources, [2]int{col, row})
			}
		}
	}

	numRivers := len(sources) / 16
	if numRivers > 8 {
		numRivers = 8
	}
	// Deterministic source selection: evenly strided rather than shuffled,
	// so classification stays a pure function of the surface and seed.
	for i := 0; i < numRivers; i++ {
		src := sources[i*len(sources)/numRivers]
		traceRiver(s, classes, src[0], src[1])
	}
}

// traceRiver follows the steepest descent from a source cell until it
// reaches ocean or runs out of downhill path.
func traceRiver(s *Surface, classes [][]Class, col, row int) {
	visited := make(map[[2]int]bool)
	const maxSteps = 200

	for step := 0; step < maxSteps; step++ {
		visited[[2]int{col, row}] = true

		if classes[col][row] == ClassOcean {
			break
		}
		if classes[col][row] != ClassMountain && classes[col][row] != ClassCoast {
			classes[col][row] = ClassRiver
		}

		bestCol, bestRow := -1, -1
		bestElev := s.At(col, row)
		for _, d := range cellNeighbors {
			nc, nr := col+d[0], row+d[1]
			if nc < 0 || nc >= s.Len() || nr < 0 || nr >= s.Width() {
				continue
			}
			if visited[[2]int{nc, nr}] {
				continue
			}
			if h := s.At(nc, nr); h < bestElev {
				bestElev = h
				bestCol, bestRow = nc, nr
			}
		}

		if bestCol < 0 {
			break // No downhill path; the river ends here.
		}
		col, row = bestCol, bestRow
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// ClassCounts returns the distribution of terrain classes.
func ClassCounts(classes [][]Class) map[Class]int {
	counts := make(map[Class]int)
	for _, col := range classes {
		for _, c := range col {
			counts[c]++
		}
	}
	return counts
}

// ClassName returns a human-readable name for a terrain class.
func ClassName(c Class) string {
	switch c {
	case ClassOcean:
		return "Ocean"
	case ClassCoast:
		return "Coast"
	case ClassPlains:
		return "Plains"
	case ClassForest:
		return "Forest"
	case ClassRiver:
		return "River"
	case ClassDesert:
		return "Desert"
	case ClassSwamp:
		return "Swamp"
	case ClassTundra:
		return "Tundra"
	case ClassMountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}
