package analysis

import (
	"fmt"

	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/bitstring"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/measure"
	"github.com/luisestrellar/esp32-sram-puf-authentication/pkg/stability"
)

// Distance is one Hamming distance observation between two measurements.
type Distance struct {
	// I and J are the 1-based measurement numbers being compared.
	I, J int
	// Bits is the raw bit distance, Percent its share of the total width.
	Bits    int
	Percent float64
}

// Weight is the Hamming weight of one measurement.
type Weight struct {
	// N is the 1-based measurement number.
	N       int
	Bits    int
	Percent float64
}

func pct(bits, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(bits) / float64(total) * 100
}

// Matrix computes the Hamming distance for every measurement pair (i < j).
func Matrix(ms []bitstring.Bits) ([]Distance, error) {
	var out []Distance
	for i := 0; i < len(ms); i++ {
		for j := i + 1; j < len(ms); j++ {
			d, err := bitstring.Distance(ms[i], ms[j])
			if err != nil {
				return nil, fmt.Errorf("measurements %d and %d: %w", i+1, j+1, err)
			}
			out = append(out, Distance{I: i + 1, J: j + 1, Bits: d, Percent: pct(d, ms[i].Len())})
		}
	}
	return out, nil
}

// CompareTo computes the distance from every measurement to the reference
// measurement number ref (1-based).
func CompareTo(ms []bitstring.Bits, ref int) ([]Distance, error) {
	if ref < 1 || ref > len(ms) {
		return nil, fmt.Errorf("reference measurement %d out of range [1:%d]", ref, len(ms))
	}
	var out []Distance
	for i, m := range ms {
		if i == ref-1 {
			continue
		}
		d, err := bitstring.Distance(ms[ref-1], m)
		if err != nil {
			return nil, fmt.Errorf("measurements %d and %d: %w", ref, i+1, err)
		}
		out = append(out, Distance{I: ref, J: i + 1, Bits: d, Percent: pct(d, m.Len())})
	}
	return out, nil
}

// Rolling computes the distance between each pair of consecutive
// measurements, the same pairs the stability analyzer inspects.
func Rolling(ms []bitstring.Bits) ([]Distance, error) {
	var out []Distance
	for i := 0; i+1 < len(ms); i++ {
		d, err := bitstring.Distance(ms[i], ms[i+1])
		if err != nil {
			return nil, fmt.Errorf("measurements %d and %d: %w", i+1, i+2, err)
		}
		out = append(out, Distance{I: i + 1, J: i + 2, Bits: d, Percent: pct(d, ms[i].Len())})
	}
	return out, nil
}

// Weights computes the Hamming weight of each measurement. Weights near 50%
// indicate an unbiased entropy source.
func Weights(ms []bitstring.Bits) []Weight {
	out := make([]Weight, len(ms))
	for i, m := range ms {
		w := m.OnesCount()
		out[i] = Weight{N: i + 1, Bits: w, Percent: pct(w, m.Len())}
	}
	return out
}

// StabilitySummary reports how much of the measurement width survives the
// stability analysis.
type StabilitySummary struct {
	Measurements int
	TotalBits    int
	StableBits   int
	Percent      float64
}

// Stability runs the same consecutive-pair analysis the provisioning
// pipeline uses and summarizes the result.
func Stability(ms []bitstring.Bits) (StabilitySummary, error) {
	mask, err := stability.ComputeMask(ms)
	if err != nil {
		return StabilitySummary{}, err
	}
	stable := mask.OnesCount()
	return StabilitySummary{
		Measurements: len(ms),
		TotalBits:    mask.Len(),
		StableBits:   stable,
		Percent:      pct(stable, mask.Len()),
	}, nil
}

// DevicePair is the inter-device distance between the first measurements of
// two devices. A and B are device (file) names.
type DevicePair struct {
	A, B    string
	Bits    int
	Percent float64
}

// CompareDevices computes pairwise distances between the first measurement
// of each device. Pairs whose measurements have different widths are
// reported with Bits == -1 rather than failing the whole comparison, since
// a directory may mix capture configurations.
func CompareDevices(devices []measure.Device) []DevicePair {
	var out []DevicePair
	for i := 0; i < len(devices); i++ {
		for j := i + 1; j < len(devices); j++ {
			a, b := devices[i], devices[j]
			pair := DevicePair{A: a.Name, B: b.Name, Bits: -1}
			if d, err := bitstring.Distance(a.Measurements[0], b.Measurements[0]); err == nil {
				pair.Bits = d
				pair.Percent = pct(d, a.Measurements[0].Len())
			}
			out = append(out, pair)
		}
	}
	return out
}
