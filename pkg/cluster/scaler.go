package cluster

import "math"

// StandardScaler 逐列标准化（零均值、单位方差）。
// Fit 后保留 Mean/Std 以便复用；零方差列仅做中心化（除数记1）
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func (s *StandardScaler) Fit(vectors [][]float64) {
	if len(vectors) == 0 {
		s.Mean, s.Std = nil, nil
		return
	}
	dim := len(vectors[0])
	mean := make([]float64, dim)
	std := make([]float64, dim)

	for _, v := range vectors {
		for d, x := range v {
			mean[d] += x
		}
	}
	n := float64(len(vectors))
	for d := range mean {
		mean[d] /= n
	}

	for _, v := range vectors {
		for d, x := range v {
			diff := x - mean[d]
			std[d] += diff * diff
		}
	}
	for d := range std {
		std[d] = math.Sqrt(std[d] / n)
		if std[d] == 0 {
			std[d] = 1
		}
	}

	s.Mean, s.Std = mean, std
}

func (s *StandardScaler) Transform(vectors [][]float64) [][]float64 {
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		row := make([]float64, len(v))
		for d, x := range v {
			row[d] = (x - s.Mean[d]) / s.Std[d]
		}
		out[i] = row
	}
	return out
}

func (s *StandardScaler) FitTransform(vectors [][]float64) [][]float64 {
	s.Fit(vectors)
	return s.Transform(vectors)
}
