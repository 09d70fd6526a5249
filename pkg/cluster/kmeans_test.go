package cluster

import (
	"reflect"
	"testing"
)

func TestKMeans_SeparatesObviousGroups(t *testing.T) {
	vectors := [][]float64{
		{0.0, 0.0},
		{0.1, 0.0},
		{0.0, 0.1},
		{5.0, 5.0},
		{5.1, 5.0},
		{5.0, 5.1},
	}

	labels, err := NewKMeans().Cluster(vectors, 2)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if len(labels) != len(vectors) {
		t.Fatalf("expected %d labels, got %d", len(vectors), len(labels))
	}
	for i, l := range labels {
		if l < 0 || l >= 2 {
			t.Errorf("label[%d]=%d outside [0,2)", i, l)
		}
	}

	if labels[0] != labels[1] || labels[0] != labels[2] {
		t.Errorf("lower group split: %v", labels[:3])
	}
	if labels[3] != labels[4] || labels[3] != labels[5] {
		t.Errorf("upper group split: %v", labels[3:])
	}
	if labels[0] == labels[3] {
		t.Errorf("groups merged: %v", labels)
	}
}

func TestKMeans_Deterministic(t *testing.T) {
	vectors := [][]float64{
		{0.9, 0.1, 0.5}, {0.1, 0.9, 0.5}, {0.5, 0.5, 0.9},
		{0.8, 0.2, 0.4}, {0.2, 0.8, 0.6}, {0.4, 0.6, 0.8},
	}

	first, err := NewKMeans().Cluster(vectors, 3)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := NewKMeans().Cluster(vectors, 3)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, next) {
			t.Fatalf("run %d: %v != %v", i, next, first)
		}
	}
}

func TestKMeans_ClampsKToSampleCount(t *testing.T) {
	vectors := [][]float64{{0, 0}, {1, 1}}
	labels, err := NewKMeans().Cluster(vectors, 5)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	for i, l := range labels {
		if l < 0 || l >= 2 {
			t.Errorf("label[%d]=%d outside [0,2)", i, l)
		}
	}
	if labels[0] == labels[1] {
		t.Errorf("distinct points share a cluster with k>=n: %v", labels)
	}
}

func TestKMeans_SingleCluster(t *testing.T) {
	vectors := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	labels, err := NewKMeans().Cluster(vectors, 1)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	for i, l := range labels {
		if l != 0 {
			t.Errorf("label[%d]=%d, expected 0", i, l)
		}
	}
}

func TestKMeans_IdenticalPoints(t *testing.T) {
	vectors := [][]float64{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}
	labels, err := NewKMeans().Cluster(vectors, 2)
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	for i, l := range labels {
		if l < 0 || l >= 2 {
			t.Errorf("label[%d]=%d outside [0,2)", i, l)
		}
	}
}

func TestKMeans_Errors(t *testing.T) {
	km := NewKMeans()

	if _, err := km.Cluster(nil, 2); err != ErrNoVectors {
		t.Errorf("nil input: expected ErrNoVectors, got %v", err)
	}
	if _, err := km.Cluster([][]float64{{1, 2}}, 0); err != ErrInvalidClusterCt {
		t.Errorf("k=0: expected ErrInvalidClusterCt, got %v", err)
	}
	if _, err := km.Cluster([][]float64{{1, 2}, {1}}, 1); err != ErrRaggedVectors {
		t.Errorf("ragged input: expected ErrRaggedVectors, got %v", err)
	}
}
