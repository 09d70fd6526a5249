package service

import (
	"adaptive_learning_backend/internal/model"
	"adaptive_learning_backend/pkg/cluster"
	"adaptive_learning_backend/pkg/logger"
	"adaptive_learning_backend/pkg/monitoring"
	"context"
	"sync"

	"go.uber.org/zap"
)

// 少于3份画像不做聚类
const minProfilesForClustering = 3

// maxClusters 聚类组数上限，k = min(3, 画像数)
const maxClusters = 3

// CacheInvalidator 分组变更后按用户失效画像缓存
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type ClusterService struct {
	Profiles  ProfileStore
	Clusterer cluster.Clusterer
	Cache     CacheInvalidator

	mu     sync.Mutex // 同一时刻只跑一次聚类
	scaler cluster.StandardScaler
}

func NewClusterService(profiles ProfileStore, clusterer cluster.Clusterer, cache CacheInvalidator) *ClusterService {
	return &ClusterService{
		Profiles:  profiles,
		Clusterer: clusterer,
		Cache:     cache,
	}
}

// Recluster 以8维风格权重向量对全量画像重新聚类。
// 样本不足时跳过；聚类数值失败只记日志，保留既有分组。
// 返回的 error 仅反映存储层故障
func (s *ClusterService) Recluster() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles, err := s.Profiles.ListAll()
	if err != nil {
		monitoring.ReclusterRuns.WithLabelValues("store_error").Inc()
		return err
	}
	if len(profiles) < minProfilesForClustering {
		logger.Log.Debug("recluster skipped, not enough profiles", zap.Int("profiles", len(profiles)))
		monitoring.ReclusterRuns.WithLabelValues("skipped").Inc()
		return nil
	}

	vectors := make([][]float64, len(profiles))
	for i := range profiles {
		vectors[i] = styleVector(&profiles[i])
	}

	standardized := s.scaler.FitTransform(vectors)

	k := maxClusters
	if len(profiles) < k {
		k = len(profiles)
	}

	labels, err := s.Clusterer.Cluster(standardized, k)
	if err != nil {
		// 退化输入不致命：维持上一次的分组
		logger.Log.Warn("clustering failed, keeping previous assignments", zap.Error(err))
		monitoring.ReclusterRuns.WithLabelValues("degenerate").Inc()
		return nil
	}

	// 只回写编号列：聚类运行期间其他请求可能已改写画像，
	// 整行覆盖会把快照里的旧字段写回去
	for i := range profiles {
		label := labels[i]
		if profiles[i].LearningCluster != nil && *profiles[i].LearningCluster == label {
			continue
		}
		if err := s.Profiles.UpdateCluster(profiles[i].UserID, label); err != nil {
			monitoring.ReclusterRuns.WithLabelValues("store_error").Inc()
			return err
		}
		if s.Cache != nil {
			s.Cache.Invalidate(context.Background(), profiles[i].UserID)
		}
	}

	monitoring.ReclusterRuns.WithLabelValues("ok").Inc()
	logger.Log.Info("profiles reclustered", zap.Int("profiles", len(profiles)), zap.Int("k", k))
	return nil
}

// ClusterSummary 单个聚类的概要：人数与平均风格权重
type ClusterSummary struct {
	Cluster          int                             `json:"cluster"`
	Members          int                             `json:"members"`
	MeanStyleWeights map[model.LearningStyle]float64 `json:"meanStyleWeights"`
}

// Summaries 面向群体个性化的聚类概要，未入组画像不计入
func (s *ClusterService) Summaries() ([]ClusterSummary, error) {
	profiles, err := s.Profiles.ListAll()
	if err != nil {
		return nil, err
	}

	byCluster := make(map[int][]*model.LearningProfile)
	for i := range profiles {
		if profiles[i].LearningCluster == nil {
			continue
		}
		c := *profiles[i].LearningCluster
		byCluster[c] = append(byCluster[c], &profiles[i])
	}

	summaries := make([]ClusterSummary, 0, len(byCluster))
	for c := 0; c < maxClusters; c++ {
		members, ok := byCluster[c]
		if !ok {
			continue
		}
		mean := make(map[model.LearningStyle]float64, len(model.AllLearningStyles))
		for _, style := range model.AllLearningStyles {
			var sum float64
			for _, p := range members {
				sum += p.StyleWeights[style]
			}
			mean[style] = sum / float64(len(members))
		}
		summaries = append(summaries, ClusterSummary{
			Cluster:          c,
			Members:          len(members),
			MeanStyleWeights: mean,
		})
	}
	return summaries, nil
}

// styleVector 固定风格顺序展开为8维特征向量
func styleVector(p *model.LearningProfile) []float64 {
	vec := make([]float64, len(model.AllLearningStyles))
	for i, style := range model.AllLearningStyles {
		vec[i] = p.StyleWeights[style]
	}
	return vec
}
