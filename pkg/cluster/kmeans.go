package cluster

import (
	"errors"
	"math"
)

var (
	ErrNoVectors        = errors.New("no vectors to cluster")
	ErrRaggedVectors    = errors.New("vectors have inconsistent dimensions")
	ErrInvalidClusterCt = errors.New("cluster count must be positive")
)

// Clusterer 将样本向量划为 k 组，返回与输入同序的组编号 [0, k)。
// 实现必须是确定性的：相同输入始终产生相同划分。
type Clusterer interface {
	Cluster(vectors [][]float64, k int) ([]int, error)
}

// KMeans 确定性 k-means：以首个样本为第一个质心，
// 其余质心取距已有质心最远的样本（最远点播种），无随机数参与
type KMeans struct {
	MaxIter int
}

func NewKMeans() *KMeans {
	return &KMeans{MaxIter: 20}
}

func (km *KMeans) Cluster(vectors [][]float64, k int) ([]int, error) {
	n := len(vectors)
	if n == 0 {
		return nil, ErrNoVectors
	}
	if k < 1 {
		return nil, ErrInvalidClusterCt
	}
	dim := len(vectors[0])
	for _, v := range vectors[1:] {
		if len(v) != dim {
			return nil, ErrRaggedVectors
		}
	}
	if k > n {
		k = n
	}

	centroids := seedCentroids(vectors, k)

	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}

	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = 20
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// 重算质心；空组保留旧质心
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := assign[i]
			counts[c]++
			for d, x := range v {
				sums[c][d] += x
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dim; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	return assign, nil
}

// seedCentroids 最远点播种：首个质心取第一个样本，之后每次
// 选取到现有质心最小距离最大的样本
func seedCentroids(vectors [][]float64, k int) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneVec(vectors[0]))

	for len(centroids) < k {
		bestIdx := 0
		bestDist := -1.0
		for i, v := range vectors {
			d := math.MaxFloat64
			for _, c := range centroids {
				if dist := squaredDistance(v, c); dist < d {
					d = dist
				}
			}
			if d > bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		centroids = append(centroids, cloneVec(vectors[bestIdx]))
	}
	return centroids
}

func nearestCentroid(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := squaredDistance(v, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := squaredDistance(v, centroids[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
